package scrape

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestExtractPageTextPrimaryContainer(t *testing.T) {
	driver := newFakeDriver()
	driver.textBySelector["main"] = "Foo Diamond II 2,341 kills"

	text, err := ExtractPageText(driver, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Foo Diamond II 2,341 kills" {
		t.Errorf("got %q", text)
	}
}

func TestExtractPageTextBodyFallback(t *testing.T) {
	driver := newFakeDriver()
	driver.outerHTML = `<html><head><style>.x{color:red}</style></head>
<body><script>var hidden = 1;</script><div>Foo</div> <div>Diamond   II</div></body></html>`

	text, err := ExtractPageText(driver, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Foo Diamond II" {
		t.Errorf("got %q, want script/style stripped and whitespace collapsed", text)
	}
	if strings.Contains(text, "hidden") {
		t.Error("script content leaked into extracted text")
	}
}
