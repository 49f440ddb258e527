// internal/executor/mock.go
package executor

import (
	"context"
	"fmt"
	"os"
)

type MockCall struct {
	Method string
	Args   []interface{}
}

type MockExecutor struct {
	Calls        []MockCall
	RunOutputs   map[string]string
	RunErrors    map[string]error
	Files        map[string][]byte
	ReadErrors   map[string]error
	WriteErrors  map[string]error
	AppendErrors map[string]error
	RemoveErrors map[string]error
}

func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		RunOutputs:   make(map[string]string),
		RunErrors:    make(map[string]error),
		Files:        make(map[string][]byte),
		ReadErrors:   make(map[string]error),
		WriteErrors:  make(map[string]error),
		AppendErrors: make(map[string]error),
		RemoveErrors: make(map[string]error),
	}
}

// Ran reports whether a Run call with exactly this command was recorded.
func (m *MockExecutor) Ran(cmd string) bool {
	for _, c := range m.Calls {
		if c.Method == "Run" && len(c.Args) == 1 && c.Args[0] == cmd {
			return true
		}
	}
	return false
}

func (m *MockExecutor) Run(_ context.Context, cmd string) (string, error) {
	m.Calls = append(m.Calls, MockCall{Method: "Run", Args: []interface{}{cmd}})
	if err, ok := m.RunErrors[cmd]; ok {
		return "", err
	}
	if out, ok := m.RunOutputs[cmd]; ok {
		return out, nil
	}
	return "", nil
}

func (m *MockExecutor) ReadFile(_ context.Context, path string) ([]byte, error) {
	m.Calls = append(m.Calls, MockCall{Method: "ReadFile", Args: []interface{}{path}})
	if err, ok := m.ReadErrors[path]; ok {
		return nil, err
	}
	if data, ok := m.Files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

func (m *MockExecutor) WriteFile(_ context.Context, path string, content []byte, mode os.FileMode) error {
	m.Calls = append(m.Calls, MockCall{Method: "WriteFile", Args: []interface{}{path, content, mode}})
	if err, ok := m.WriteErrors[path]; ok {
		return err
	}
	m.Files[path] = content
	return nil
}

func (m *MockExecutor) AppendFile(_ context.Context, path string, content []byte) error {
	m.Calls = append(m.Calls, MockCall{Method: "AppendFile", Args: []interface{}{path, content}})
	if err, ok := m.AppendErrors[path]; ok {
		return err
	}
	m.Files[path] = append(m.Files[path], content...)
	return nil
}

func (m *MockExecutor) Remove(_ context.Context, path string) error {
	m.Calls = append(m.Calls, MockCall{Method: "Remove", Args: []interface{}{path}})
	if err, ok := m.RemoveErrors[path]; ok {
		return err
	}
	if _, ok := m.Files[path]; !ok {
		return fmt.Errorf("file not found: %s", path)
	}
	delete(m.Files, path)
	return nil
}

func (m *MockExecutor) FileExists(_ context.Context, path string) (bool, error) {
	m.Calls = append(m.Calls, MockCall{Method: "FileExists", Args: []interface{}{path}})
	_, ok := m.Files[path]
	return ok, nil
}
