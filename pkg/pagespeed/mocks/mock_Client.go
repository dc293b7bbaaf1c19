// Package mocks provides test doubles for the pagespeed client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	pagespeed "github.com/ArunMS01/ai-sales/pkg/pagespeed"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Analyze provides a mock function with given fields: ctx, pageURL
func (_m *MockClient) Analyze(ctx context.Context, pageURL string) (*pagespeed.Result, error) {
	ret := _m.Called(ctx, pageURL)

	if len(ret) == 0 {
		panic("no return value specified for Analyze")
	}

	var r0 *pagespeed.Result
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*pagespeed.Result, error)); ok {
		return rf(ctx, pageURL)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *pagespeed.Result); ok {
		r0 = rf(ctx, pageURL)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*pagespeed.Result)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, pageURL)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
