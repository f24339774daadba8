package document

import "os"

// TextFormat implements Format for plain text. It is also the fallback for
// unregistered extensions.
type TextFormat struct{}

func init() {
	Register(&TextFormat{})
}

func (f *TextFormat) Name() string         { return "Text" }
func (f *TextFormat) Extensions() []string { return []string{".txt", ".text"} }

func (f *TextFormat) Load(filename string, opts Options) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	pages, _ := paginate(splitParagraphs(string(data)), opts.wordsPerPage())
	if len(pages) == 0 {
		return nil, ErrEmpty
	}
	return &Document{Pages: pages}, nil
}
