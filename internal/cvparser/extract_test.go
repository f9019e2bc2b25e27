package cvparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	assert.Equal(t, MimePDF, DetectType("cv.PDF", "application/octet-stream"))
	assert.Equal(t, MimeDOCX, DetectType("cv.docx", ""))
	assert.Equal(t, MimeText, DetectType("notes", "text/plain; charset=utf-8"))
	assert.Equal(t, "image/png", DetectType("photo", "image/png"))
}

func TestExtractText_Plain(t *testing.T) {
	text, err := ExtractText(MimeText, []byte("Ayşe  Yılmaz\t\n\n\n\nYazılım   Mühendisi  \n"))
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz\n\nYazılım Mühendisi", text)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("image/png", []byte{0x89})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractText_BrokenPDF(t *testing.T) {
	_, err := ExtractText(MimePDF, []byte("not a pdf"))
	assert.Error(t, err)
}

func TestXMLUnescape(t *testing.T) {
	assert.Equal(t, `A & B <c> "d"`, xmlUnescape("A &amp; B &lt;c&gt; &quot;d&quot;"))
}
