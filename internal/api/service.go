package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "projectvault.v1.SecretVault"

// Full method names, as seen by interceptors.
const (
	MethodPing         = "/" + ServiceName + "/Ping"
	MethodCreateSecret = "/" + ServiceName + "/CreateSecret"
	MethodListSecrets  = "/" + ServiceName + "/ListSecrets"
	MethodRevealSecret = "/" + ServiceName + "/RevealSecret"
	MethodUpdateSecret = "/" + ServiceName + "/UpdateSecret"
	MethodDeleteSecret = "/" + ServiceName + "/DeleteSecret"
)

// SecretVaultServer is implemented by the server-side handler.
type SecretVaultServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateSecret(context.Context, *CreateSecretRequest) (*CreateSecretResponse, error)
	ListSecrets(context.Context, *ListSecretsRequest) (*ListSecretsResponse, error)
	RevealSecret(context.Context, *RevealSecretRequest) (*RevealSecretResponse, error)
	UpdateSecret(context.Context, *UpdateSecretRequest) (*UpdateSecretResponse, error)
	DeleteSecret(context.Context, *DeleteSecretRequest) (*DeleteSecretResponse, error)
}

// UnimplementedSecretVaultServer answers every method with
// codes.Unimplemented. Embed it to satisfy SecretVaultServer partially.
type UnimplementedSecretVaultServer struct{}

func (UnimplementedSecretVaultServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedSecretVaultServer) CreateSecret(context.Context, *CreateSecretRequest) (*CreateSecretResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateSecret not implemented")
}
func (UnimplementedSecretVaultServer) ListSecrets(context.Context, *ListSecretsRequest) (*ListSecretsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSecrets not implemented")
}
func (UnimplementedSecretVaultServer) RevealSecret(context.Context, *RevealSecretRequest) (*RevealSecretResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RevealSecret not implemented")
}
func (UnimplementedSecretVaultServer) UpdateSecret(context.Context, *UpdateSecretRequest) (*UpdateSecretResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateSecret not implemented")
}
func (UnimplementedSecretVaultServer) DeleteSecret(context.Context, *DeleteSecretRequest) (*DeleteSecretResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteSecret not implemented")
}

// RegisterSecretVaultServer registers srv on s.
func RegisterSecretVaultServer(s grpc.ServiceRegistrar, srv SecretVaultServer) {
	s.RegisterService(&SecretVaultServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodDesc.Handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(SecretVaultServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SecretVaultServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SecretVaultServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var SecretVaultServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SecretVaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, SecretVaultServer.Ping)},
		{MethodName: "CreateSecret", Handler: unaryHandler(MethodCreateSecret, SecretVaultServer.CreateSecret)},
		{MethodName: "ListSecrets", Handler: unaryHandler(MethodListSecrets, SecretVaultServer.ListSecrets)},
		{MethodName: "RevealSecret", Handler: unaryHandler(MethodRevealSecret, SecretVaultServer.RevealSecret)},
		{MethodName: "UpdateSecret", Handler: unaryHandler(MethodUpdateSecret, SecretVaultServer.UpdateSecret)},
		{MethodName: "DeleteSecret", Handler: unaryHandler(MethodDeleteSecret, SecretVaultServer.DeleteSecret)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "projectvault/v1/vault",
}

// SecretVaultClient is the client side of the service.
type SecretVaultClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	CreateSecret(ctx context.Context, in *CreateSecretRequest, opts ...grpc.CallOption) (*CreateSecretResponse, error)
	ListSecrets(ctx context.Context, in *ListSecretsRequest, opts ...grpc.CallOption) (*ListSecretsResponse, error)
	RevealSecret(ctx context.Context, in *RevealSecretRequest, opts ...grpc.CallOption) (*RevealSecretResponse, error)
	UpdateSecret(ctx context.Context, in *UpdateSecretRequest, opts ...grpc.CallOption) (*UpdateSecretResponse, error)
	DeleteSecret(ctx context.Context, in *DeleteSecretRequest, opts ...grpc.CallOption) (*DeleteSecretResponse, error)
}

type secretVaultClient struct {
	cc grpc.ClientConnInterface
}

func NewSecretVaultClient(cc grpc.ClientConnInterface) SecretVaultClient {
	return &secretVaultClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *secretVaultClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *secretVaultClient) CreateSecret(ctx context.Context, in *CreateSecretRequest, opts ...grpc.CallOption) (*CreateSecretResponse, error) {
	return invoke[CreateSecretResponse](ctx, c.cc, MethodCreateSecret, in, opts)
}

func (c *secretVaultClient) ListSecrets(ctx context.Context, in *ListSecretsRequest, opts ...grpc.CallOption) (*ListSecretsResponse, error) {
	return invoke[ListSecretsResponse](ctx, c.cc, MethodListSecrets, in, opts)
}

func (c *secretVaultClient) RevealSecret(ctx context.Context, in *RevealSecretRequest, opts ...grpc.CallOption) (*RevealSecretResponse, error) {
	return invoke[RevealSecretResponse](ctx, c.cc, MethodRevealSecret, in, opts)
}

func (c *secretVaultClient) UpdateSecret(ctx context.Context, in *UpdateSecretRequest, opts ...grpc.CallOption) (*UpdateSecretResponse, error) {
	return invoke[UpdateSecretResponse](ctx, c.cc, MethodUpdateSecret, in, opts)
}

func (c *secretVaultClient) DeleteSecret(ctx context.Context, in *DeleteSecretRequest, opts ...grpc.CallOption) (*DeleteSecretResponse, error) {
	return invoke[DeleteSecretResponse](ctx, c.cc, MethodDeleteSecret, in, opts)
}
