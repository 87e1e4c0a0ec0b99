package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
	statuspb "google.golang.org/genproto/googleapis/rpc/status"
)

// fakeAnnotator records acquisition and release so tests can assert the
// client is closed exactly once on every exit path.
type fakeAnnotator struct {
	imagesResp *visionpb.BatchAnnotateImagesResponse
	imagesErr  error
	filesResp  *visionpb.BatchAnnotateFilesResponse
	filesErr   error
	closeCount int
}

func (f *fakeAnnotator) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
	return f.imagesResp, f.imagesErr
}

func (f *fakeAnnotator) BatchAnnotateFiles(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error) {
	return f.filesResp, f.filesErr
}

func (f *fakeAnnotator) Close() error {
	f.closeCount++
	return nil
}

func newFakeExtractor(fake *fakeAnnotator) (*Extractor, *int) {
	acquired := 0
	e := NewWithAnnotator(func(ctx context.Context) (Annotator, error) {
		acquired++
		return fake, nil
	})
	return e, &acquired
}

func validPDF(extra string) []byte {
	return []byte("%PDF-1.7\n" + extra)
}

func TestExtractUnsupportedType(t *testing.T) {
	fake := &fakeAnnotator{}
	e, acquired := newFakeExtractor(fake)

	_, err := e.Extract(context.Background(), []byte("hello world"), "text/plain")

	assert.Equal(t, ReasonUnsupportedType, ReasonOf(err))
	assert.Equal(t, 0, *acquired, "unsupported type must not acquire a client")
}

func TestExtractPDFHeaderChecks(t *testing.T) {
	testCases := []struct {
		name       string
		buf        []byte
		wantReason Reason
	}{
		{name: "missing magic", buf: []byte("not a pdf at all"), wantReason: ReasonCorrupted},
		{name: "truncated", buf: []byte("%P"), wantReason: ReasonCorrupted},
		{name: "encrypted", buf: validPDF("trailer << /Encrypt 5 0 R >>"), wantReason: ReasonPasswordProtected},
		{name: "too large", buf: append(validPDF(""), make([]byte, maxPDFBytes)...), wantReason: ReasonTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAnnotator{}
			e, acquired := newFakeExtractor(fake)

			_, err := e.Extract(context.Background(), tc.buf, MimePDF)

			assert.Equal(t, tc.wantReason, ReasonOf(err))
			assert.Equal(t, 0, *acquired, "header rejection must not acquire a client")
		})
	}
}

func TestExtractPDFSuccess(t *testing.T) {
	fake := &fakeAnnotator{
		filesResp: &visionpb.BatchAnnotateFilesResponse{
			Responses: []*visionpb.AnnotateFileResponse{
				{
					Responses: []*visionpb.AnnotateImageResponse{
						{FullTextAnnotation: &visionpb.TextAnnotation{Text: "Page one contents here."}},
						{FullTextAnnotation: &visionpb.TextAnnotation{Text: "Page two contents here."}},
					},
				},
			},
		},
	}
	e, acquired := newFakeExtractor(fake)

	text, err := e.Extract(context.Background(), validPDF("stream endstream"), MimePDF)

	assert.NoError(t, err)
	assert.Equal(t, "Page one contents here.\n\nPage two contents here.", text)
	assert.Equal(t, 1, *acquired)
	assert.Equal(t, 1, fake.closeCount, "client must be closed after a successful call")
}

func TestExtractPDFProviderError(t *testing.T) {
	fake := &fakeAnnotator{filesErr: errors.New("rpc unavailable")}
	e, _ := newFakeExtractor(fake)

	_, err := e.Extract(context.Background(), validPDF("body"), MimePDF)

	assert.Equal(t, ReasonProviderFailure, ReasonOf(err))
	assert.Equal(t, 1, fake.closeCount, "client must be closed on the error path too")
}

func TestExtractImageSuccess(t *testing.T) {
	fake := &fakeAnnotator{
		imagesResp: &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{
				{FullTextAnnotation: &visionpb.TextAnnotation{Text: "Whiteboard  notes   from\n\n\n\nthe standup meeting."}},
			},
		},
	}
	e, _ := newFakeExtractor(fake)

	text, err := e.Extract(context.Background(), []byte{0xff, 0xd8, 0xff}, "image/jpeg")

	assert.NoError(t, err)
	assert.Equal(t, "Whiteboard notes from\n\nthe standup meeting.", text)
	assert.Equal(t, 1, fake.closeCount)
}

func TestExtractImageNoText(t *testing.T) {
	fake := &fakeAnnotator{
		imagesResp: &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{{}},
		},
	}
	e, _ := newFakeExtractor(fake)

	_, err := e.Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png")

	assert.Equal(t, ReasonEmptyResult, ReasonOf(err))
	assert.Equal(t, 1, fake.closeCount)
}

func TestExtractImageResponseError(t *testing.T) {
	fake := &fakeAnnotator{
		imagesResp: &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{
				{Error: &statuspb.Status{Code: 3, Message: "bad image data"}},
			},
		},
	}
	e, _ := newFakeExtractor(fake)

	_, err := e.Extract(context.Background(), []byte{0x00}, "image/png")

	assert.Equal(t, ReasonCorrupted, ReasonOf(err))
	assert.Equal(t, 1, fake.closeCount)
}

func TestExtractImageFactoryFailure(t *testing.T) {
	e := NewWithAnnotator(func(ctx context.Context) (Annotator, error) {
		return nil, errors.New("no credentials")
	})

	_, err := e.Extract(context.Background(), []byte{0x01}, "image/png")

	assert.Equal(t, ReasonProviderFailure, ReasonOf(err))
}

func TestExtractDOCXStructureChecks(t *testing.T) {
	cfb := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0x00, 0x00}

	testCases := []struct {
		name       string
		buf        []byte
		wantReason Reason
	}{
		{name: "cfb container means encrypted", buf: cfb, wantReason: ReasonPasswordProtected},
		{name: "not a zip", buf: []byte("plain text pretending"), wantReason: ReasonCorrupted},
		{name: "zip magic but garbage", buf: []byte("PK\x03\x04 not really a zip archive"), wantReason: ReasonCorrupted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := extractDOCX(tc.buf)
			assert.Equal(t, tc.wantReason, ReasonOf(err))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses spaces", in: "a   b\t\tc", want: "a b c"},
		{name: "caps blank lines", in: "a\n\n\n\n\nb", want: "a\n\nb"},
		{name: "trims line edges", in: "  a  \n  b  ", want: "a\nb"},
		{name: "trims outer whitespace", in: "\n\n  hello  \n\n", want: "hello"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeText(tc.in))
		})
	}
}

func TestFinishTextRejectsShortOutput(t *testing.T) {
	_, err := finishText("image", "  ab  ")
	assert.Equal(t, ReasonEmptyResult, ReasonOf(err))

	text, err := finishText("image", "long enough output")
	assert.NoError(t, err)
	assert.Equal(t, "long enough output", text)
}

func TestUserMessageCoversEveryReason(t *testing.T) {
	reasons := []Reason{
		ReasonUnsupportedType,
		ReasonCorrupted,
		ReasonPasswordProtected,
		ReasonEmptyResult,
		ReasonTooLarge,
		ReasonProviderFailure,
	}
	for _, r := range reasons {
		msg := UserMessage(&Error{Op: "test", Reason: r})
		assert.NotEmpty(t, msg)
		assert.False(t, strings.Contains(msg, "rpc"), "user message must not leak transport detail")
	}
}
