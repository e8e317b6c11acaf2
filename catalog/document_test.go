package catalog_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_Document_Variants(t *testing.T) {
	testCases := []struct {
		description    string
		document       catalog.Document
		expectedKind   catalog.Kind
		expectedTitle  string
		expectedString string
	}{
		{
			description:    "plain document",
			document:       catalog.NewDocument("Manuscrit"),
			expectedKind:   catalog.KindDocument,
			expectedTitle:  "Manuscrit",
			expectedString: "Document [Titre=Manuscrit]",
		},
		{
			description:    "volume",
			document:       catalog.NewVolume("Les Mots", "Sartre"),
			expectedKind:   catalog.KindVolume,
			expectedTitle:  "Les Mots",
			expectedString: "Volume [Auteur=Sartre, Titre=Les Mots]",
		},
		{
			description:    "comic",
			document:       catalog.NewComic("Les Piafs", "Uderzo", "Goscinny"),
			expectedKind:   catalog.KindComic,
			expectedTitle:  "Les Piafs",
			expectedString: "BD [Dessinateur=Goscinny, Auteur=Uderzo, Titre=Les Piafs]",
		},
		{
			description:    "dictionary",
			document:       catalog.NewDictionary("Larousse", "Bellemaire"),
			expectedKind:   catalog.KindDictionary,
			expectedTitle:  "Larousse",
			expectedString: "Dictionnaire [Auteur=Bellemaire, Titre=Larousse]",
		},
		{
			description:    "periodical",
			document:       catalog.NewPeriodical("Journal 1", time.Date(2024, 5, 2, 18, 30, 0, 0, time.UTC)),
			expectedKind:   catalog.KindPeriodical,
			expectedTitle:  "Journal 1",
			expectedString: "Journal [DateDeParution=2024-05-02, Titre=Journal 1]",
		},
		{
			description:    "book",
			document:       catalog.NewBook("Oubli", "Sartre"),
			expectedKind:   catalog.KindBook,
			expectedTitle:  "Oubli",
			expectedString: "Livre [Auteur=Sartre, Titre=Oubli]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// assert
			assert.Equal(t, tc.expectedKind, tc.document.Kind())
			assert.Equal(t, tc.expectedTitle, tc.document.Title())
			assert.Equal(t, tc.expectedString, tc.document.String())
			assert.NotEqual(t, uuid.Nil, tc.document.ID())
		})
	}
}

func Test_Kind_String(t *testing.T) {
	assert.Equal(t, "document", catalog.KindDocument.String())
	assert.Equal(t, "volume", catalog.KindVolume.String())
	assert.Equal(t, "comic", catalog.KindComic.String())
	assert.Equal(t, "dictionary", catalog.KindDictionary.String())
	assert.Equal(t, "periodical", catalog.KindPeriodical.String())
	assert.Equal(t, "book", catalog.KindBook.String())
	assert.Equal(t, "unknown", catalog.Kind(42).String())
}

func Test_Document_Setters(t *testing.T) {
	// arrange
	comic := catalog.NewComic("Les Piafs", "Uderzo", "Goscinny")

	// act
	comic.SetAuthor("Goscinny")
	comic.SetIllustrator("Uderzo")

	// assert
	assert.Equal(t, "Goscinny", comic.Author())
	assert.Equal(t, "Uderzo", comic.Illustrator())
	assert.Equal(t, "BD [Dessinateur=Uderzo, Auteur=Goscinny, Titre=Les Piafs]", comic.String())
}

func Test_Periodical_PublishedOn_IsACalendarDay(t *testing.T) {
	// arrange
	periodical := catalog.NewPeriodical("Journal 1", time.Date(2024, 5, 2, 18, 30, 0, 0, time.UTC))

	// assert
	assert.Equal(t, Day(2024, 5, 2), periodical.PublishedOn())
}
