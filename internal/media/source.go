package media

// ImageSource is where the image of a saved entity comes from.
// Exactly one of Uploaded, Linked or Unchanged.
type ImageSource interface {
	imageSource()
}

// Uploaded carries the bytes of a file chosen by the operator
type Uploaded struct {
	Bytes []byte
	Name  string
}

// Linked carries a pasted external URL
type Linked struct {
	URL string
}

// Unchanged keeps the reference already stored on the entity (updates only)
type Unchanged struct{}

func (Uploaded) imageSource()  {}
func (Linked) imageSource()    {}
func (Unchanged) imageSource() {}

// SourceOf picks the source from raw form values. A non-empty file wins over a link.
func SourceOf(fileBytes []byte, fileName, link string) ImageSource {
	switch {
	case len(fileBytes) > 0:
		return Uploaded{Bytes: fileBytes, Name: fileName}
	case link != "":
		return Linked{URL: link}
	}
	return Unchanged{}
}
