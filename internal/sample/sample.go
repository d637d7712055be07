// Package sample generates the fallback data the services use when a
// backing file is absent or unreadable.
package sample

import (
	"math/rand"
	"time"

	"github.com/libriscore/libris/internal/entities"
	"github.com/libriscore/libris/internal/id"
)

type bookSeed struct {
	title       string
	author      string
	publisher   string
	genre       string
	isbn        string
	year        int
	description string
	totalPages  int
}

var bookSeeds = []bookSeed{
	{
		title:       "The Great Gatsby",
		author:      "F. Scott Fitzgerald",
		publisher:   "Scribner",
		genre:       "Classic, Fiction",
		isbn:        "9780743273565",
		year:        1925,
		description: "A classic novel of the Jazz Age, telling the tragic story of self-made millionaire Jay Gatsby and his pursuit of the beautiful Daisy Buchanan.",
		totalPages:  180,
	},
	{
		title:       "To Kill a Mockingbird",
		author:      "Harper Lee",
		publisher:   "J. B. Lippincott & Co.",
		genre:       "Classic, Fiction, Historical",
		isbn:        "9780446310789",
		year:        1960,
		description: "The unforgettable novel of a childhood in a sleepy Southern town and the crisis of conscience that rocked it.",
		totalPages:  281,
	},
	{
		title:       "1984",
		author:      "George Orwell",
		publisher:   "Secker & Warburg",
		genre:       "Dystopian, Political Fiction",
		isbn:        "9780451524935",
		year:        1949,
		description: "A dystopian social science fiction novel and cautionary tale about the dangers of totalitarianism.",
		totalPages:  328,
	},
	{
		title:       "Pride and Prejudice",
		author:      "Jane Austen",
		publisher:   "T. Egerton",
		genre:       "Classic, Romance",
		isbn:        "9780141439518",
		year:        1813,
		description: "The romantic clash between the opinionated Elizabeth and her proud beau, Mr. Darcy, is a splendid performance of civilized sparring.",
		totalPages:  432,
	},
	{
		title:       "The Hobbit",
		author:      "J.R.R. Tolkien",
		publisher:   "George Allen & Unwin",
		genre:       "Fantasy, Adventure",
		isbn:        "9780547928227",
		year:        1937,
		description: "Bilbo Baggins, a respectable, well-to-do hobbit, lives comfortably in his hobbit-hole until the day the wandering wizard Gandalf chooses him to take part in an adventure.",
		totalPages:  310,
	},
}

var statusCycle = []entities.ReadingStatus{
	entities.StatusNotStarted,
	entities.StatusReading,
	entities.StatusCompleted,
	entities.StatusOnHold,
}

// Books generates up to count sample books. Statuses cycle through the
// four reading states, with start/finish dates, pages and ratings derived
// to match each status.
func Books(count int) []entities.Book {
	if count > len(bookSeeds) {
		count = len(bookSeeds)
	}

	now := time.Now()
	books := make([]entities.Book, 0, count)

	for i := 0; i < count; i++ {
		seed := bookSeeds[i%len(bookSeeds)]
		status := statusCycle[i%len(statusCycle)]

		var startDate, finishDate, review, notes string
		var currentPage, progress int
		var rating float64

		switch status {
		case entities.StatusReading:
			startDate = now.AddDate(0, 0, -(1 + rand.Intn(30))).Format("2006-01-02")
			currentPage = 1 + rand.Intn(seed.totalPages/2)
			progress = currentPage * 100 / seed.totalPages
		case entities.StatusCompleted:
			startDate = now.AddDate(0, 0, -(60 + rand.Intn(306))).Format("2006-01-02")
			finishDate = now.AddDate(0, 0, -(1 + rand.Intn(59))).Format("2006-01-02")
			currentPage = seed.totalPages
			progress = 100
			rating = 3.5 + rand.Float64()*1.5
			if rand.Intn(2) == 0 {
				review = "A wonderful read!"
			}
			notes = "Great book!"
		}

		categories := []string{entities.DefaultCategory}
		if i < 2 {
			categories = append(categories, "Favorites")
		}

		books = append(books, entities.Book{
			ID:          id.MustGenerate("book"),
			Title:       seed.title,
			Author:      seed.author,
			Publisher:   seed.publisher,
			Genre:       seed.genre,
			ISBN:        seed.isbn,
			Year:        seed.year,
			Status:      status,
			Progress:    progress,
			CurrentPage: currentPage,
			TotalPages:  seed.totalPages,
			Rating:      rating,
			Review:      review,
			Categories:  categories,
			Description: seed.description,
			StartDate:   startDate,
			FinishDate:  finishDate,
			Notes:       notes,
		})
	}

	return books
}

// Categories returns the default category set.
func Categories() []entities.Category {
	return []entities.Category{
		{Name: "Favorites", Color: "#4B0082"},
		{Name: "Want to Read", Color: "#10B981"},
		{Name: "Currently Reading", Color: "#3B82F6"},
		{Name: "Classics", Color: "#F59E0B"},
		{Name: "Science Fiction", Color: "#EF4444"},
		{Name: "Non-Fiction", Color: "#7A3BA3"},
		{Name: "Fantasy", Color: "#8B5CF6"},
		{Name: "Biography", Color: "#EC4899"},
	}
}

// Achievements returns the full achievement definitions, all locked.
func Achievements() []entities.Achievement {
	return []entities.Achievement{
		{ID: "first-book", Name: "First Book", Description: "Add your first book to the library", Icon: "📚"},
		{ID: "five-books", Name: "Book Collector", Description: "Add 5 books to your library", Icon: "⭐"},
		{ID: "ten-books", Name: "Library Builder", Description: "Add 10 books to your library", Icon: "🏆"},
		{ID: "week-streak", Name: "Reading Streak", Description: "Maintain a 7-day reading streak", Icon: "🔥"},
		{ID: "multitasker", Name: "Multitasker", Description: "Read 3 books simultaneously", Icon: "📖"},
		{ID: "dedicated-reader", Name: "Dedicated Reader", Description: "Complete 5 books", Icon: "💪"},
		{ID: "speed-reader", Name: "Speed Reader", Description: "Complete a book in 3 days", Icon: "⚡"},
		{ID: "genre-master", Name: "Genre Master", Description: "Read books from 5 different genres", Icon: "🎭"},
	}
}
