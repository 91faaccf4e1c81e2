package repository

import (
	"errors"
	"testing"

	"github.com/onixlab/onix-crm/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	utils.InitLogger()
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"network timeout code", mongo.CommandError{Code: 89}, true},
		{"not master code", mongo.CommandError{Code: 10107}, true},
		{"duplicate key code", mongo.CommandError{Code: 11000}, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"server selection", errors.New("server selection error: timeout"), true},
		{"plain error", errors.New("document validation failed"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRetryableError(tc.err); got != tc.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestExecuteDbOperationStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		attempts++
		return nil, errors.New("document validation failed")
	}, 3)

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt for non-retryable error, got %d", attempts)
	}
}

func TestExecuteDbOperationRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	result, err := ExecuteDbOperation(func() (interface{}, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("connection refused")
		}
		return "ok", nil
	}, 3)

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != "ok" {
		t.Errorf("unexpected result %v", result)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}
