package restyutil

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

// InstrumentClient writes a transcript of every completed exchange made by
// client to output. if output is nil this is a no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := fmt.Sprintf("%04d", atomic.AddUint64(&counter, 1))
		output.Write(id, formatHttpMessage(res))
		slog.DebugContext(
			res.Request.Context(), "http exchange recorded",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"message_id", id,
		)
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		slog.ErrorContext(
			req.Context(), "request failed",
			"method", req.Method,
			"url", req.URL,
			"err", err,
		)
	})
}
