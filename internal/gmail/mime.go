package gmail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// encodeRaw assembles an RFC 2822 multipart message with the attachment
// and returns it base64url-encoded, the form the Gmail API expects.
func encodeRaw(msg Message) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", errors.New("recipient is required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=\"UTF-8\"")
	textPart, err := mw.CreatePart(textHeader)
	if err != nil {
		return "", fmt.Errorf("create text part: %w", err)
	}
	if _, err := textPart.Write([]byte(msg.Body)); err != nil {
		return "", fmt.Errorf("write text part: %w", err)
	}

	if len(msg.Attachment) > 0 {
		contentType := msg.AttachmentMime
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		name := msg.AttachmentName
		if name == "" {
			name = "attachment"
		}

		attachHeader := textproto.MIMEHeader{}
		attachHeader.Set("Content-Type", contentType)
		attachHeader.Set("Content-Transfer-Encoding", "base64")
		attachHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		attachPart, err := mw.CreatePart(attachHeader)
		if err != nil {
			return "", fmt.Errorf("create attachment part: %w", err)
		}
		if _, err := attachPart.Write(wrapBase64(msg.Attachment)); err != nil {
			return "", fmt.Errorf("write attachment part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// wrapBase64 encodes data and folds it into 76-character lines.
func wrapBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)
	var out bytes.Buffer
	for len(encoded) > 76 {
		out.WriteString(encoded[:76])
		out.WriteString("\r\n")
		encoded = encoded[76:]
	}
	out.WriteString(encoded)
	return out.Bytes()
}

// sanitizeHeader strips newlines so LLM output cannot inject headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
