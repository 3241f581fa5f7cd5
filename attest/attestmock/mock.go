// Package attestmock provides a gomock-style mock of attest.Sink for
// emitter tests, hand-written in the shape mockgen would generate.
package attestmock

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockSink is a mock of the attest.Sink interface.
type MockSink struct {
	ctrl     *gomock.Controller
	recorder *MockSinkMockRecorder
}

// MockSinkMockRecorder is the mock recorder for MockSink.
type MockSinkMockRecorder struct {
	mock *MockSink
}

// NewMockSink creates a new mock instance.
func NewMockSink(ctrl *gomock.Controller) *MockSink {
	mock := &MockSink{ctrl: ctrl}
	mock.recorder = &MockSinkMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSink) EXPECT() *MockSinkMockRecorder {
	return m.recorder
}

// Send mocks base method.
func (m *MockSink) Send(encoded []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", encoded)
	ret0, _ := ret[0].(error)
	return ret0
}

// Send indicates an expected call of Send.
func (mr *MockSinkMockRecorder) Send(encoded interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockSink)(nil).Send), encoded)
}
