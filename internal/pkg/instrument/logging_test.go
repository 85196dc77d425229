package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(&contextHandler{
		Handler: &maskHandler{
			handler:  slog.NewJSONHandler(buf, nil),
			maskKeys: buildMaskKeys([]string{" Email ", "phone", ""}),
		},
		serviceName: "gomart",
	})

	ctx := SetCorrelationID(context.Background(), "cid-1")
	logger.InfoContext(ctx, "address submitted",
		"email", "a@b.com",
		"body", `{"phone":"1234567890","city":"NY"}`,
		"fields", map[string]string{"email": "x", "zipcode": "12345"},
		slog.Group("form", slog.String("phone", "0700000000")),
	)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "***", out["email"])
	assert.JSONEq(t, `{"phone":"***","city":"NY"}`, out["body"].(string))
	assert.Equal(t, map[string]any{"email": "***", "zipcode": "12345"}, out["fields"])
	assert.Equal(t, map[string]any{"phone": "***"}, out["form"])
	assert.Equal(t, "cid-1", out["_cID"])
	assert.Equal(t, "gomart", out["service"])
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(context.Background(), "abc")))
}

func TestNewNoop(t *testing.T) {
	ins := NewNoop()

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()

	c := Counter(ins.Meter("test"), "test.count", "count")
	require.NotNil(t, c)
	c.Add(context.Background(), 1)

	assert.NoError(t, ins.Shutdown(context.Background()))
}
