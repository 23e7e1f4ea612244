package requestutil

import (
	"fmt"
	"io"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

var ContentTypesGzip = []string{
	"application/gzip",
	"application/x-gzip",
}

var ContentTypesXZ = []string{
	"application/x-xz",
	"application/xz",
}

// WithDecompress copies the response body into out,
// decompressing it first if the server labelled it as
// a gzip or xz payload.
func WithDecompress(out io.Writer) requests.ResponseHandler {
	return func(response *http.Response) error {
		log := logr.FromContextOrDiscard(response.Request.Context())
		var stream io.Reader

		contentType := response.Header.Get("Content-Type")
		switch {
		case isGzipped(contentType):
			log.V(8).Info("decompressing gzip response")
			dec, err := gzip.NewReader(response.Body)
			if err != nil {
				return fmt.Errorf("decompressing gzip: %w", err)
			}
			defer dec.Close()
			stream = dec
		case isXZ(contentType):
			log.V(8).Info("decompressing xz response")
			dec, err := xz.NewReader(response.Body)
			if err != nil {
				return fmt.Errorf("decompressing xz: %w", err)
			}
			stream = dec
		default:
			stream = response.Body
		}

		n, err := io.Copy(out, stream)
		if err != nil {
			return fmt.Errorf("writing uncompressed output: %w", err)
		}
		log.V(6).Info("read response body", "bytes", n, "contentType", contentType)
		return nil
	}
}

func isGzipped(s string) bool {
	return mimetype.EqualsAny(s, ContentTypesGzip...)
}

func isXZ(s string) bool {
	return mimetype.EqualsAny(s, ContentTypesXZ...)
}
