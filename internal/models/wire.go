package models

// Wire types for the persisted JSON document. Struct field order fixes the
// key order inside each entity (name before content, files before
// subdirectories); encoding/json sorts map keys, so the rendered text is
// identical for identical trees.

type fileDoc struct {
	Name    string  `json:"name"`
	Content *string `json:"content"`
}

type directoryDoc struct {
	Files          map[string]fileDoc       `json:"files"`
	Subdirectories map[string]*directoryDoc `json:"subdirectories"`
}

type structureDoc struct {
	Directories map[string]*directoryDoc `json:"directories"`
}

func (f *File) doc() fileDoc {
	d := fileDoc{Name: f.name}
	if f.hasContent {
		content := f.content
		d.Content = &content
	}
	return d
}

func (d *Directory) doc() *directoryDoc {
	doc := &directoryDoc{
		Files:          make(map[string]fileDoc, len(d.files)),
		Subdirectories: make(map[string]*directoryDoc, len(d.subdirs)),
	}
	for name, f := range d.files {
		doc.Files[name] = f.doc()
	}
	for name, sub := range d.subdirs {
		doc.Subdirectories[name] = sub.doc()
	}
	return doc
}

func (s *FileStructure) doc() *structureDoc {
	doc := &structureDoc{Directories: make(map[string]*directoryDoc, len(s.directories))}
	for name, d := range s.directories {
		doc.Directories[name] = d.doc()
	}
	return doc
}
