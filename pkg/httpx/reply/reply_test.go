package reply_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"flat_price/pkg/contextx"
	"flat_price/pkg/errcodes"
	"flat_price/pkg/httpx/reply"
)

type codedError struct{}

func (codedError) Error() string                { return "model is not loaded" }
func (codedError) ErrorCode() failure.ErrorCode { return errcodes.ModelNotLoaded }

func TestError(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		err        error
		statusCode int
		code       string
	}{
		{
			name: "Invalid argument",
			err: failure.NewInvalidArgumentError(
				"district out of range",
				failure.WithCode(errcodes.DistrictOutOfRange),
				failure.WithDescription("district must be one of 1, 2, 3"),
			),
			statusCode: http.StatusBadRequest,
			code:       errcodes.DistrictOutOfRange.String(),
		},
		{
			name:       "Domain error with own code",
			err:        codedError{},
			statusCode: http.StatusInternalServerError,
			code:       errcodes.ModelNotLoaded.String(),
		},
		{
			name:       "Plain error",
			err:        errors.New("boom"),
			statusCode: http.StatusInternalServerError,
			code:       errcodes.InternalServerError.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			w := httptest.NewRecorder()

			reply.Error(ctx, w, tc.err)

			rq.Equal(tc.statusCode, w.Code)
			rq.Contains(w.Body.String(), `"code":"`+tc.code+`"`)
			rq.Contains(w.Body.String(), `"supportId":"trace-1"`)
		})
	}
}
