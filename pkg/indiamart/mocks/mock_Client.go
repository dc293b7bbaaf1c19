// Package mocks provides test doubles for the indiamart client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	indiamart "github.com/ArunMS01/ai-sales/pkg/indiamart"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchSellers provides a mock function with given fields: ctx, query
func (_m *MockClient) SearchSellers(ctx context.Context, query indiamart.SellerQuery) (*indiamart.SellerResponse, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for SearchSellers")
	}

	var r0 *indiamart.SellerResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, indiamart.SellerQuery) (*indiamart.SellerResponse, error)); ok {
		return rf(ctx, query)
	}
	if rf, ok := ret.Get(0).(func(context.Context, indiamart.SellerQuery) *indiamart.SellerResponse); ok {
		r0 = rf(ctx, query)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*indiamart.SellerResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, indiamart.SellerQuery) error); ok {
		r1 = rf(ctx, query)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
