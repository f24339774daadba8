package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     navLabel   `xml:"navLabel"`
	Content   navContent `xml:"content"`
	Children  []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// spineInfo is where a spine item landed after pagination.
type spineInfo struct {
	page    int
	preview string
}

// readTOC parses the book's NCX and resolves every entry to a page.
func readTOC(filename string, book *epub.Rootfile, spine map[string]spineInfo) ([]TOCEntry, error) {
	data, err := findAndReadNCX(filename, book)
	if err != nil {
		return nil, err
	}

	var toc ncx
	if err := xml.Unmarshal(data, &toc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX: %w", err)
	}
	return flattenNavPoints(toc.NavMap.NavPoints, spine, 0), nil
}

func findAndReadNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}
	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}

func flattenNavPoints(points []navPoint, spine map[string]spineInfo, level int) []TOCEntry {
	var entries []TOCEntry

	for _, np := range points {
		href := stripFragment(np.Content.Src)

		info, ok := spine[href]
		if !ok {
			info, ok = spine[baseName(href)]
		}
		page := 1
		if ok {
			page = info.page
		}

		entries = append(entries, TOCEntry{
			Title:   strings.TrimSpace(np.Label.Text),
			Preview: info.preview,
			Page:    page,
			Level:   level,
		})
		if len(np.Children) > 0 {
			entries = append(entries, flattenNavPoints(np.Children, spine, level+1)...)
		}
	}
	return entries
}

func stripFragment(href string) string {
	if idx := strings.Index(href, "#"); idx != -1 {
		return href[:idx]
	}
	return href
}

func baseName(href string) string {
	return path.Base(stripFragment(href))
}
