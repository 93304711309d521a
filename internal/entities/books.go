package entities

// Book is a catalogued book. Reviews reference it through reviews.book_id.
type Book struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"index" json:"title"`
	Author          string `gorm:"index" json:"author"`
	PublicationYear int    `json:"publication_year"`
}

func (Book) TableName() string {
	return "books"
}

// Review belongs to exactly one Book. The foreign key is declared without an
// ON DELETE action, so removing a book never removes its reviews.
type Review struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	BookID uint   `gorm:"index;not null" json:"book_id"`
	Text   string `gorm:"type:text" json:"text"`
	Rating int    `json:"rating"`

	Book *Book `gorm:"foreignKey:BookID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)
