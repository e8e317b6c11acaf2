package catalog

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Kind tags the variant of a Document.
type Kind int

const (
	// KindDocument is a plain document with a title only.
	KindDocument Kind = iota
	// KindVolume is a document with an author.
	KindVolume
	// KindComic is a volume with an illustrator.
	KindComic
	// KindDictionary is a reference volume.
	KindDictionary
	// KindPeriodical is a newspaper issue with a publication date.
	KindPeriodical
	// KindBook is a volume that can be lent to members.
	KindBook
)

// String returns the name used for the Kind in events and logs.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindVolume:
		return "volume"
	case KindComic:
		return "comic"
	case KindDictionary:
		return "dictionary"
	case KindPeriodical:
		return "periodical"
	case KindBook:
		return "book"
	default:
		return "unknown"
	}
}

// Document is any entry of the catalog.
//
// The set of variants is closed: only this package can implement Document.
// Use Kind to branch on the variant, or a type switch on the concrete pointer types.
type Document interface {
	ID() uuid.UUID
	Kind() Kind
	Title() string
	String() string

	sealed()
}

// record holds what all variants share. The title is set once at construction.
type record struct {
	id    uuid.UUID
	title string
}

func newRecord(title string) record {
	return record{id: uuid.New(), title: title}
}

// ID returns the identity assigned at construction.
func (r *record) ID() uuid.UUID {
	return r.id
}

// Title returns the title.
func (r *record) Title() string {
	return r.title
}

func (r *record) sealed() {}

/***** Record *****/

// Record is a plain document that only has a title.
type Record struct {
	record
}

// NewDocument creates a plain document.
func NewDocument(title string) *Record {
	return &Record{record: newRecord(title)}
}

// Kind returns KindDocument.
func (d *Record) Kind() Kind {
	return KindDocument
}

func (d *Record) String() string {
	return "Document [Titre=" + d.title + "]"
}

/***** Volume *****/

// Volume is a document written by an author.
type Volume struct {
	record
	author string
}

// NewVolume creates a volume.
func NewVolume(title, author string) *Volume {
	return &Volume{record: newRecord(title), author: author}
}

// Kind returns KindVolume.
func (v *Volume) Kind() Kind {
	return KindVolume
}

// Author returns the author.
func (v *Volume) Author() string {
	return v.author
}

// SetAuthor replaces the author.
func (v *Volume) SetAuthor(author string) {
	v.author = author
}

func (v *Volume) String() string {
	return "Volume [Auteur=" + v.author + ", Titre=" + v.title + "]"
}

/***** Comic *****/

// Comic is a volume with an illustrator (a "bande dessinée").
type Comic struct {
	Volume
	illustrator string
}

// NewComic creates a comic.
func NewComic(title, author, illustrator string) *Comic {
	return &Comic{
		Volume:      Volume{record: newRecord(title), author: author},
		illustrator: illustrator,
	}
}

// Kind returns KindComic.
func (c *Comic) Kind() Kind {
	return KindComic
}

// Illustrator returns the illustrator.
func (c *Comic) Illustrator() string {
	return c.illustrator
}

// SetIllustrator replaces the illustrator.
func (c *Comic) SetIllustrator(illustrator string) {
	c.illustrator = illustrator
}

func (c *Comic) String() string {
	return "BD [Dessinateur=" + c.illustrator + ", Auteur=" + c.author + ", Titre=" + c.title + "]"
}

/***** Dictionary *****/

// Dictionary is a reference volume. It is never lent.
type Dictionary struct {
	Volume
}

// NewDictionary creates a dictionary.
func NewDictionary(title, author string) *Dictionary {
	return &Dictionary{Volume: Volume{record: newRecord(title), author: author}}
}

// Kind returns KindDictionary.
func (d *Dictionary) Kind() Kind {
	return KindDictionary
}

func (d *Dictionary) String() string {
	return "Dictionnaire [Auteur=" + d.author + ", Titre=" + d.title + "]"
}

/***** Periodical *****/

// Periodical is a newspaper issue. Within one Catalog, its publication date is unique.
type Periodical struct {
	record
	publishedOn time.Time
}

// NewPeriodical creates a periodical; the publication date is reduced to its calendar day.
func NewPeriodical(title string, publishedOn time.Time) *Periodical {
	return &Periodical{record: newRecord(title), publishedOn: ToDate(publishedOn)}
}

// Kind returns KindPeriodical.
func (p *Periodical) Kind() Kind {
	return KindPeriodical
}

// PublishedOn returns the publication date.
func (p *Periodical) PublishedOn() time.Time {
	return p.publishedOn
}

func (p *Periodical) String() string {
	return "Journal [DateDeParution=" + p.publishedOn.Format(dateLayout) + ", Titre=" + p.title + "]"
}

// Ensure all variants implement Document.
var (
	_ Document = (*Record)(nil)
	_ Document = (*Volume)(nil)
	_ Document = (*Comic)(nil)
	_ Document = (*Dictionary)(nil)
	_ Document = (*Periodical)(nil)
	_ Document = (*Book)(nil)
)
