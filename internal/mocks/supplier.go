package mocks

import (
	"github.com/brettbedarf/memns"
	"github.com/stretchr/testify/mock"
)

// MockDescriptorSupplier implements memns.DescriptorSupplier for testing across packages
type MockDescriptorSupplier struct {
	mock.Mock
}

func (m *MockDescriptorSupplier) RootDescriptor() ([]byte, error) {
	args := m.Called()

	// Handle function return types (for complex tests)
	if fn, ok := args.Get(0).(func() []byte); ok {
		return fn(), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ memns.DescriptorSupplier = (*MockDescriptorSupplier)(nil)
