package gateway

import "context"

// nullGateway 没有配置后端时使用，所有操作都返回 ErrNotConfigured
type nullGateway struct{}

var _ Gateway = nullGateway{}

func NewNullGateway() Gateway {
	return nullGateway{}
}

func (nullGateway) Select(context.Context, string, Query, any) error { return ErrNotConfigured }

func (nullGateway) Insert(context.Context, string, any) error { return ErrNotConfigured }

func (nullGateway) Update(context.Context, string, any, map[string]any) error {
	return ErrNotConfigured
}

func (nullGateway) Delete(context.Context, string, any) error { return ErrNotConfigured }

func (nullGateway) Subscribe(string, Filter, func(Change)) Subscription { return idleSubscription{} }

// idleSubscription 永远不会推送
type idleSubscription struct{}

func (idleSubscription) Unsubscribe() {}
