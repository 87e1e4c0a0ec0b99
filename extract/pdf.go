package extract

import (
	"bytes"
	"context"
	"strings"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

// maxPDFBytes is the Vision API limit for synchronous file annotation.
const maxPDFBytes = 20 * 1024 * 1024

// extractPDF runs document text detection over an inline PDF. The Vision
// client is acquired per call and released on every exit path.
func (e *Extractor) extractPDF(ctx context.Context, buf []byte) (string, error) {
	if len(buf) < 4 || string(buf[:4]) != "%PDF" {
		return "", &Error{Op: "pdf", Reason: ReasonCorrupted}
	}
	if len(buf) > maxPDFBytes {
		return "", &Error{Op: "pdf", Reason: ReasonTooLarge}
	}
	// Encrypted PDFs carry an /Encrypt entry in the trailer dictionary.
	if bytes.Contains(buf, []byte("/Encrypt")) {
		return "", &Error{Op: "pdf", Reason: ReasonPasswordProtected}
	}

	annotator, err := e.newAnnotator(ctx)
	if err != nil {
		return "", &Error{Op: "pdf", Reason: ReasonProviderFailure, Err: err}
	}
	defer annotator.Close()

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  buf,
					MimeType: MimePDF,
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := annotator.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", &Error{Op: "pdf", Reason: ReasonProviderFailure, Err: err}
	}
	if len(resp.Responses) == 0 {
		return "", &Error{Op: "pdf", Reason: ReasonProviderFailure}
	}
	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return "", &Error{Op: "pdf", Reason: ReasonProviderFailure, Err: apiStatusError(fileResp.Error)}
	}

	var b strings.Builder
	for _, page := range fileResp.Responses {
		if page.Error != nil {
			return "", &Error{Op: "pdf", Reason: ReasonProviderFailure, Err: apiStatusError(page.Error)}
		}
		if page.FullTextAnnotation == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(page.FullTextAnnotation.Text)
	}

	return finishText("pdf", b.String())
}
