package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

var exportTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testProject(kind domain.DocKind) *domain.Project {
	like := domain.FeedbackLike
	return &domain.Project{
		ID:      "p1",
		OwnerID: "alice",
		Title:   "Market Review",
		Kind:    kind,
		Topic:   "EV & batteries",
		Sections: []domain.Section{
			{ID: "s2", Title: "Second", Order: 2, Content: "- one\n- two\n- three\n- four\n- five\n- six\n- seven"},
			{ID: "s1", Title: "First", Order: 1, Content: "Opening paragraph\nwrapped line.\n\n- point a\n- point b",
				Versions: []domain.Version{
					{Number: 1, Content: "draft", Prompt: "Initial generation with professional tone", Timestamp: exportTime, Feedback: &like},
					{Number: 2, Content: "Opening paragraph", Prompt: "shorter", Timestamp: exportTime, Comment: "nice"},
				}},
		},
	}
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(b)
	}
	require.Equal(t, "[Content_Types].xml", zr.File[0].Name)
	return out
}

func TestParseBlocks(t *testing.T) {
	blocks := ParseBlocks("# Heading\n\nFirst line\nsecond line\n\n- a\n- b\n\n1. c")

	require.Len(t, blocks, 5)
	assert.Equal(t, Block{Kind: BlockHeading, Level: 1, Text: "Heading"}, blocks[0])
	assert.Equal(t, Block{Kind: BlockParagraph, Text: "First line second line"}, blocks[1])
	assert.Equal(t, Block{Kind: BlockBullet, Text: "a"}, blocks[2])
	assert.Equal(t, Block{Kind: BlockBullet, Text: "b"}, blocks[3])
	assert.Equal(t, Block{Kind: BlockBullet, Text: "c"}, blocks[4])

	assert.Empty(t, ParseBlocks("  \n\n"))
}

func TestSlideBullets_Capped(t *testing.T) {
	got := SlideBullets("- one\n- two\n- three\n- four\n- five\n- six\n- seven")
	assert.Equal(t, []string{"one", "two", "three", "four", "five", "six"}, got)
}

func TestWordRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WordRenderer{}.Render(&buf, testProject(domain.KindWord), exportTime))

	parts := readZip(t, buf.Bytes())
	doc := parts["word/document.xml"]
	require.NotEmpty(t, doc)
	assert.Contains(t, parts, "word/styles.xml")
	assert.Contains(t, parts, "_rels/.rels")

	assert.Contains(t, doc, "Market Review")
	assert.Contains(t, doc, "Topic: EV &amp; batteries")
	assert.Contains(t, doc, "March 14, 2025")
	assert.Contains(t, doc, "Table of Contents")
	assert.Contains(t, doc, "Opening paragraph wrapped line.")
	assert.Contains(t, doc, "• point a")
	// sections are ordered by Order, not by position
	assert.Less(t, strings.Index(doc, "1. First"), strings.Index(doc, "2. Second"))
}

func TestSlidesRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SlidesRenderer{}.Render(&buf, testProject(domain.KindSlides), exportTime))

	parts := readZip(t, buf.Bytes())
	assert.Contains(t, parts, "ppt/theme/theme1.xml")
	assert.Contains(t, parts["ppt/presentation.xml"], `<p:sldId id="258" r:id="rId5"/>`)
	assert.NotContains(t, parts, "ppt/slides/slide4.xml")

	assert.Contains(t, parts["ppt/slides/slide1.xml"], "Market Review")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "First")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "point b")
	assert.Contains(t, parts["ppt/slides/slide3.xml"], "six")
	assert.NotContains(t, parts["ppt/slides/slide3.xml"], "seven")
	assert.Contains(t, parts["[Content_Types].xml"], "/ppt/slides/slide3.xml")
}

func TestHistoryReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HistoryReport{}.Render(&buf, testProject(domain.KindWord), exportTime))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, versionsSheet}, f.GetSheetList())

	rows, err := f.GetRows(versionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"First", "1", "2025-03-14T09:30:00Z", "Initial generation with professional tone", "like", "", "draft"}, rows[1])
	assert.Equal(t, "nice", rows[2][5])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "First", "2", "1", "0"}, summary[6][:5])
}

func TestFormat(t *testing.T) {
	f, err := ParseFormat("PPTX")
	require.NoError(t, err)
	assert.Equal(t, FormatPptx, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, FormatDocx.Accepts(domain.KindWord))
	assert.False(t, FormatDocx.Accepts(domain.KindSlides))
	assert.True(t, FormatXlsx.Accepts(domain.KindSlides))

	assert.Equal(t, "My_Great_Deck.pptx", FileName(" My Great Deck ", FormatPptx))
	assert.Equal(t, "document.docx", FileName("", FormatDocx))
}

type fakeUploader struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &manager.UploadOutput{}, f.err
}

func TestS3Archiver(t *testing.T) {
	up := &fakeUploader{}
	a := &S3Archiver{up: up, bucket: "exports", prefix: "docgen"}

	key := ArchiveKey("alice", "p1", "Deck.pptx", exportTime)
	require.NoError(t, a.Archive(context.Background(), key, []byte("zip"), FormatPptx.ContentType()))

	assert.Equal(t, "exports", aws.ToString(up.input.Bucket))
	assert.Equal(t, "docgen/alice/p1/20250314T093000Z-Deck.pptx", aws.ToString(up.input.Key))
	assert.Equal(t, []byte("zip"), up.body)

	up.err = errors.New("denied")
	assert.Error(t, a.Archive(context.Background(), key, nil, ""))
}
