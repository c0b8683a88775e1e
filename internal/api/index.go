package api

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/internal/intake"
)

// indexTemplate is the minimal upload form served at the root path.
//
//nolint:gochecknoglobals // parsed once at startup
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>File Drop</title>
    <style>
        body { font-family: sans-serif; max-width: 640px; margin: 40px auto; padding: 0 16px; color: #333; }
        form { margin: 24px 0; padding: 24px; border: 2px dashed #999; border-radius: 8px; }
        input[type="submit"] { padding: 8px 16px; }
        .info { background: #f4f4f4; padding: 12px 16px; border-radius: 8px; }
    </style>
</head>
<body>
    <h1>&#128228; File Drop</h1>
    <form action="/upload" method="post" enctype="multipart/form-data">
        <input type="file" name="file" required>
        <input type="submit" value="Upload">
    </form>
    <div class="info">
        <p>Allowed file types: {{.Extensions}}</p>
        <p>Maximum file size: {{.MaxSizeMB}}MB</p>
    </div>
</body>
</html>
`))

type indexData struct {
	Extensions string
	MaxSizeMB  int64
}

func newIndexData(policy *intake.Policy) indexData {
	return indexData{
		Extensions: strings.Join(policy.AllowedExtensions(), ", "),
		MaxSizeMB:  policy.MaxSizeBytes() / (1 << 20),
	}
}

// handleIndex serves the upload form with the configured constraints.
func (rt *Router) handleIndex(c *fiber.Ctx) error {
	var buf bytes.Buffer

	if err := indexTemplate.Execute(&buf, rt.index); err != nil {
		return errx.Wrap(err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return c.Send(buf.Bytes())
}
