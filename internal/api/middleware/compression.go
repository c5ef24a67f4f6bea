package middleware

import (
	"bytes"
	"compress/gzip"
	"strings"

	"github.com/gin-gonic/gin"
)

// minCompressLength is the smallest response body worth compressing
const minCompressLength = 1024

// Compression returns a middleware that gzips JSON responses larger than
// minCompressLength when the client accepts it.
func Compression() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gw := &gzipResponseWriter{
			ResponseWriter: c.Writer,
			buf:            new(bytes.Buffer),
		}
		c.Writer = gw
		c.Header("Vary", "Accept-Encoding")

		c.Next()

		gw.finish()
	}
}

type gzipResponseWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (g *gzipResponseWriter) Write(data []byte) (int, error) {
	return g.buf.Write(data)
}

func (g *gzipResponseWriter) WriteString(s string) (int, error) {
	return g.buf.WriteString(s)
}

func (g *gzipResponseWriter) finish() error {
	content := g.buf.Bytes()

	if len(content) < minCompressLength {
		_, err := g.ResponseWriter.Write(content)
		return err
	}

	g.Header().Set("Content-Encoding", "gzip")
	g.Header().Del("Content-Length")

	gz := gzip.NewWriter(g.ResponseWriter)
	if _, err := gz.Write(content); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}
