// Package rpc exposes dispatch.Parse as a gRPC service, the "thin collaborator"
// surface kept deliberately outside the core's scope. It proves the
// core is host-agnostic rather than standing in as a production RPC gateway:
// no TLS, auth, or rate limiting is implemented here.
package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/dispatch"
	"github.com/ModChain/visualsign/log"
)

// AbiMappingRequest is one caller-supplied ABI registration: {name, json,
// address, chain_id}.
type AbiMappingRequest struct {
	Name    string `json:"name"`
	JSON    string `json:"json"`
	Address string `json:"address,omitempty"`
	ChainID uint64 `json:"chain_id,omitempty"`
}

// ParseRequest is the unary request for Parse: an unsigned transaction
// payload (hex or base64, per dispatch.decodeInput), the chain family it
// belongs to, and any caller-supplied dynamic-ABI mappings.
type ParseRequest struct {
	UnsignedPayload string               `json:"unsigned_payload"`
	Chain           string               `json:"chain"`
	ChainID         uint64               `json:"chain_id,omitempty"`
	AbiMappings     []AbiMappingRequest  `json:"abi_mappings,omitempty"`
}

// ParseResponse carries the resulting SignablePayload as canonical JSON
// bytes, so the wire representation matches exactly what a CLI or any other
// caller would see for the same input.
type ParseResponse struct {
	SignablePayloadJSON []byte `json:"signable_payload_json"`
}

// HealthRequest takes no parameters.
type HealthRequest struct{}

// HealthResponse reports readiness; this service has no persisted state and
// no external dependencies to probe, so it is always Serving once running.
type HealthResponse struct {
	Status string `json:"status"`
}

var chainsByName = map[string]chain.Chain{
	"ethereum": chain.EVM,
	"solana":   chain.SVM,
	"sui":      chain.Sui,
	"tron":     chain.Tron,
}

// Service implements the VisualSign gRPC service. It is stateless beyond
// the default registries dispatch.Parse builds and shares internally.
type Service struct{}

// Parse decodes one unsigned transaction into a SignablePayload.
func (Service) Parse(ctx context.Context, req *ParseRequest) (*ParseResponse, error) {
	ch, ok := chainsByName[req.Chain]
	if !ok {
		return nil, chainUnrecognized(req.Chain)
	}

	mappings := make([]dispatch.AbiMapping, 0, len(req.AbiMappings))
	for _, m := range req.AbiMappings {
		mappings = append(mappings, dispatch.AbiMapping{
			Name:    m.Name,
			JSON:    []byte(m.JSON),
			Address: m.Address,
			ChainID: m.ChainID,
		})
	}

	payload, err := dispatch.Parse(ctx, req.UnsignedPayload, ch, dispatch.Options{
		ChainID:     req.ChainID,
		AbiMappings: mappings,
	})
	if err != nil {
		log.WithFields(log.Fields{"chain": req.Chain}).WithError(err).Warn("parse failed")
		return nil, err
	}

	body, err := canonicalJSON(payload)
	if err != nil {
		return nil, err
	}
	return &ParseResponse{SignablePayloadJSON: body}, nil
}

// Health reports that the service is ready to accept requests.
func (Service) Health(ctx context.Context, _ *HealthRequest) (*HealthResponse, error) {
	return &HealthResponse{Status: "SERVING"}, nil
}

// NewServer builds a grpc.Server with the VisualSign service registered and
// a diagnostic logging interceptor attached (method name and outcome only,
// never request/response contents).
func NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(loggingInterceptor)}, opts...)
	s := grpc.NewServer(opts...)
	RegisterVisualSignServer(s, Service{})
	return s
}

func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	entry := log.WithFields(log.Fields{"method": info.FullMethod})
	if err != nil {
		entry.WithError(err).Warn("rpc call failed")
	} else {
		entry.Debug("rpc call ok")
	}
	return resp, err
}
