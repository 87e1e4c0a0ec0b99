package extract

import (
	"context"
	"fmt"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	statuspb "google.golang.org/genproto/googleapis/rpc/status"
)

// extractImage runs OCR over a single inline image. The Vision client is the
// one resource needing explicit release: it is acquired per call and Close is
// guaranteed on every exit path, including provider errors.
func (e *Extractor) extractImage(ctx context.Context, buf []byte) (string, error) {
	annotator, err := e.newAnnotator(ctx)
	if err != nil {
		return "", &Error{Op: "image", Reason: ReasonProviderFailure, Err: err}
	}
	defer annotator.Close()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: buf},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := annotator.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", &Error{Op: "image", Reason: ReasonProviderFailure, Err: err}
	}
	if len(resp.Responses) == 0 {
		return "", &Error{Op: "image", Reason: ReasonProviderFailure}
	}
	imgResp := resp.Responses[0]
	if imgResp.Error != nil {
		return "", &Error{Op: "image", Reason: ReasonCorrupted, Err: apiStatusError(imgResp.Error)}
	}
	if imgResp.FullTextAnnotation == nil {
		return "", &Error{Op: "image", Reason: ReasonEmptyResult}
	}

	return finishText("image", imgResp.FullTextAnnotation.Text)
}

func apiStatusError(st *statuspb.Status) error {
	return fmt.Errorf("vision: %s (code %d)", st.GetMessage(), st.GetCode())
}
