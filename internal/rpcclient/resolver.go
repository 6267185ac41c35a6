package rpcclient

import (
	"fmt"

	"google.golang.org/grpc/resolver"
)

// multiconnResolverScheme names the manual resolver registered per Pool
// channel. It republishes the same loopback address connsPerChannel
// times; combined with the round_robin balancer policy, grpc-go opens
// one real subconn (one HTTP/2 connection) per resolved address, so
// connsPerChannel controls real connection fan-out independent of the
// channel count (spec §9, SPEC_FULL §6.3).
const multiconnResolverScheme = "qprobe-multiconn"

type multiconnResolverBuilder struct {
	address string
	count   int
}

func newMulticonnResolverBuilder(address string, count int) resolver.Builder {
	return &multiconnResolverBuilder{address: address, count: count}
}

func (b *multiconnResolverBuilder) Scheme() string { return multiconnResolverScheme }

func (b *multiconnResolverBuilder) Build(target resolver.Target, cc resolver.ClientConn, _ resolver.BuildOptions) (resolver.Resolver, error) {
	addrs := make([]resolver.Address, b.count)
	for i := 0; i < b.count; i++ {
		// Each entry carries a distinct ServerName so grpc-go's
		// round_robin balancer treats them as distinct subconns instead
		// of deduplicating identical addresses (which would collapse
		// the fan-out back to a single connection).
		addrs[i] = resolver.Address{Addr: b.address, ServerName: fmt.Sprintf("conn-%d", i)}
	}
	if err := cc.UpdateState(resolver.State{Addresses: addrs}); err != nil {
		return nil, err
	}
	return &multiconnResolver{}, nil
}

// multiconnResolver is static: the address set never changes after
// Build, so ResolveNow and Close are both no-ops.
type multiconnResolver struct{}

func (*multiconnResolver) ResolveNow(resolver.ResolveNowOptions) {}
func (*multiconnResolver) Close()                                {}
