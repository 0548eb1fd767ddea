package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName  = "mealmoment.payment.v1.PaymentService"
	chargeMethod = "/" + ServiceName + "/Charge"
)

// GRPCClient is a Gateway backed by the payment service.
type GRPCClient struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

func DialGRPC(addr string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial payment service %s: %w", addr, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GRPCClient{conn: conn, timeout: timeout}, nil
}

func (c *GRPCClient) Close() error { return c.conn.Close() }

func (c *GRPCClient) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	in, err := encodeRequest(req)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, chargeMethod, in, out, grpc.WaitForReady(true)); err != nil {
		st := status.Convert(err)
		switch st.Code() {
		case codes.FailedPrecondition:
			return nil, fmt.Errorf("%w: %s", ErrDeclined, st.Message())
		case codes.InvalidArgument:
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, st.Message())
		}
		return nil, fmt.Errorf("payment rpc: %w", err)
	}

	ch := &Charge{
		ID:          out.GetFields()["id"].GetStringValue(),
		AmountCents: int64(out.GetFields()["amount"].GetNumberValue()),
		Currency:    out.GetFields()["currency"].GetStringValue(),
	}
	if ch.ID == "" {
		return nil, errors.New("payment rpc: empty charge id")
	}
	return ch, nil
}

func encodeRequest(req ChargeRequest) (*structpb.Struct, error) {
	meta := make(map[string]any, len(req.Metadata))
	for k, v := range req.Metadata {
		meta[k] = v
	}
	return structpb.NewStruct(map[string]any{
		"amount":      req.AmountCents,
		"currency":    req.Currency,
		"token":       req.Token,
		"description": req.Description,
		"metadata":    meta,
	})
}

func decodeRequest(in *structpb.Struct) ChargeRequest {
	f := in.GetFields()
	req := ChargeRequest{
		AmountCents: int64(f["amount"].GetNumberValue()),
		Currency:    f["currency"].GetStringValue(),
		Token:       f["token"].GetStringValue(),
		Description: f["description"].GetStringValue(),
		Metadata:    map[string]string{},
	}
	for k, v := range f["metadata"].GetStructValue().GetFields() {
		req.Metadata[k] = v.GetStringValue()
	}
	return req
}

type paymentServer interface {
	Charge(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type server struct {
	gw Gateway
}

func (s *server) Charge(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := decodeRequest(in)
	ch, err := s.gw.Charge(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDeclined):
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		case errors.Is(err, ErrInvalidAmount):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		log.Error().Err(err).Int64("amount", req.AmountCents).Msg("charge failed")
		return nil, status.Error(codes.Internal, "charge failed")
	}
	log.Info().Str("charge_id", ch.ID).Int64("amount", ch.AmountCents).Str("order", req.Metadata["order_number"]).Msg("charge accepted")
	return structpb.NewStruct(map[string]any{
		"id":       ch.ID,
		"amount":   ch.AmountCents,
		"currency": ch.Currency,
	})
}

func chargeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(paymentServer).Charge(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: chargeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(paymentServer).Charge(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*paymentServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Charge", Handler: chargeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mealmoment/payment/v1/payment.proto",
}

// RegisterServer exposes gw as the payment service on s.
func RegisterServer(s grpc.ServiceRegistrar, gw Gateway) {
	s.RegisterService(&serviceDesc, &server{gw: gw})
}
