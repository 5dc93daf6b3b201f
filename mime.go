package drivepath

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// mimeOctetStream is what the sniffer falls back to when nothing matched, so
// a sniff result of exactly this type counts as inconclusive.
const mimeOctetStream = "application/octet-stream"

// resolveMimeType infers the MIME type of an upload. Strategies in order:
// the explicit type, the target name's extension, then content sniffing of
// data or the local file. When all three are inconclusive the upload is
// rejected rather than mislabeled.
func resolveMimeType(explicit, name string, data []byte, localPath string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		if i := strings.IndexByte(byExt, ';'); i >= 0 {
			byExt = strings.TrimSpace(byExt[:i])
		}
		return byExt, nil
	}

	var sniffed string
	switch {
	case localPath != "":
		mt, err := mimetype.DetectFile(localPath)
		if err != nil {
			return "", newIOError("failed to sniff mime type", err)
		}
		sniffed = mt.String()
	case len(data) > 0:
		sniffed = mimetype.Detect(data).String()
	}
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	if sniffed != "" && sniffed != mimeOctetStream {
		return sniffed, nil
	}
	return "", fmt.Errorf("cannot infer mime type for '%s': %w", name, ErrAmbiguousMimeType)
}
