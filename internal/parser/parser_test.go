package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const listingPage = `<html><body><table>
<tr><td><a href="?C=N&amp;O=D">Name</a></td></tr>
<tr><td><a href="../">Parent directory/</a></td></tr>
<tr><td><a href="a.zip">a.zip</a></td></tr>
<tr><td><a href="B.ZIP">B.ZIP</a></td></tr>
<tr><td><a href="notes.txt">notes.txt</a></td></tr>
<tr><td><a href="sub/">sub/</a></td></tr>
<tr><td><a href="a.zip">a.zip (again)</a></td></tr>
<tr><td><a href="#top">back to top</a></td></tr>
<tr><td><a href="mailto:admin@x">contact</a></td></tr>
<tr><td><a href="javascript:void(0)">noop</a></td></tr>
</table></body></html>`

func TestClassifyListing(t *testing.T) {
	p := NewListingParser("zip")

	listing := p.Classify([]byte(listingPage), "https://x/files/")

	assert.Equal(t, []string{
		"https://x/files/a.zip",
		"https://x/files/B.ZIP",
	}, listing.Targets)
	// The sort link resolves to the page itself; the parent link is
	// dropped outright.
	assert.Equal(t, []string{
		"https://x/files/",
		"https://x/files/sub/",
	}, listing.Directories)
}

func TestClassifyExtensionNormalization(t *testing.T) {
	// ".ZIP" and "zip" configure the same parser.
	for _, ext := range []string{"zip", ".zip", ".ZIP"} {
		p := NewListingParser(ext)
		assert.True(t, p.IsTargetFile("https://x/files/a.zip"), "ext %q", ext)
		assert.True(t, p.IsTargetFile("https://x/files/A.Zip"), "ext %q", ext)
		assert.False(t, p.IsTargetFile("https://x/files/a.zip.txt"), "ext %q", ext)
	}
}

func TestClassifyQueryAndFragmentStripped(t *testing.T) {
	p := NewListingParser("zip")

	page := `<a href="a.zip?download=1#frag">a.zip</a>`
	listing := p.Classify([]byte(page), "https://x/files/")

	assert.Equal(t, []string{"https://x/files/a.zip"}, listing.Targets)
}

func TestClassifyAbsoluteAndRootRelative(t *testing.T) {
	p := NewListingParser("zip")

	page := `
		<a href="https://x/files/deep/c.zip">c</a>
		<a href="/files/root.zip">root</a>
		<a href="https://elsewhere.example/d.zip">offsite</a>`
	listing := p.Classify([]byte(page), "https://x/files/sub/")

	// Scope filtering is not the parser's job; it reports what the
	// page links to.
	assert.Equal(t, []string{
		"https://x/files/deep/c.zip",
		"https://x/files/root.zip",
		"https://elsewhere.example/d.zip",
	}, listing.Targets)
}

func TestClassifyMalformedHTML(t *testing.T) {
	p := NewListingParser("zip")

	page := `<table><tr><td><a href="a.zip">a.zip<tr></table><a href="sub/`
	listing := p.Classify([]byte(page), "https://x/files/")

	// html parsing is forgiving; at minimum the intact anchor survives
	// and nothing panics.
	assert.Contains(t, listing.Targets, "https://x/files/a.zip")
}

func TestClassifyEmptyAndNonHTML(t *testing.T) {
	p := NewListingParser("zip")

	assert.Empty(t, p.Classify(nil, "https://x/files/").Targets)

	listing := p.Classify([]byte("{\"not\": \"html\"}"), "https://x/files/")
	assert.Empty(t, listing.Targets)
	assert.Empty(t, listing.Directories)
}

func TestIsDirectory(t *testing.T) {
	assert.True(t, IsDirectory("https://x/files/sub/"))
	assert.False(t, IsDirectory("https://x/files/a.zip"))
	assert.False(t, IsDirectory("https://x/files/README"))
}
