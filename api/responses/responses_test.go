package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["hello"] != "world" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestWriteErrorTyped(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInsufficientQty, "short by 10").
		WithDetails(map[string]int{"available": 20, "requested": 30})

	WriteError(context.Background(), rec, testLogger(), err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var body ErrorEnvelope
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode: %v", decodeErr)
	}
	if body.Error.Code != pkgerrors.CodeInsufficientQty {
		t.Fatalf("code = %s", body.Error.Code)
	}
	if body.Error.Message != "short by 10" {
		t.Fatalf("message = %q", body.Error.Message)
	}
	if body.Error.Details == nil {
		t.Fatal("details must survive for detail-allowed codes")
	}
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), rec, testLogger(), errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	var body ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != pkgerrors.CodeInternal {
		t.Fatalf("code = %s", body.Error.Code)
	}
	// Internal messages must not leak the cause.
	if body.Error.Message != "internal server error" {
		t.Fatalf("message leaked: %q", body.Error.Message)
	}
}

func TestWriteErrorForbiddenHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible").
		WithDetails("internal hint")

	WriteError(context.Background(), rec, testLogger(), err)

	var body ErrorEnvelope
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode: %v", decodeErr)
	}
	if body.Error.Details != nil {
		t.Fatal("details must be stripped for codes that disallow them")
	}
}
