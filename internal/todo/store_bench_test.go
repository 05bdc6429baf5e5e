package todo

import (
	"fmt"
	"testing"
)

func benchStore(b *testing.B, n int) *Store {
	b.Helper()
	s := newTestStore()
	today := s.Today()
	for i := 0; i < n; i++ {
		due := today.AddDays(i % 30)
		in := NewTask{
			Title:       fmt.Sprintf("Task %d", i),
			Description: fmt.Sprintf("Details for task number %d", i),
			Priority:    Priorities()[i%3],
		}
		if i%4 != 0 {
			in.DueDate = &due
		}
		if _, err := s.Create(in); err != nil {
			b.Fatal(err)
		}
	}
	return s
}

func BenchmarkCreate(b *testing.B) {
	s := newTestStore()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Create(NewTask{Title: "Benchmark task"}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearchKeyword(b *testing.B) {
	s := benchStore(b, 1000)
	f := Filter{Keyword: "NUMBER 99"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Search(f)
	}
}

func BenchmarkSortByPriority(b *testing.B) {
	s := benchStore(b, 1000)
	tasks := s.List()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Sort(tasks, SortByPriority)
	}
}

func BenchmarkSortByDueDate(b *testing.B) {
	s := benchStore(b, 1000)
	tasks := s.List()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Sort(tasks, SortByDueDate)
	}
}

func BenchmarkSummary(b *testing.B) {
	s := benchStore(b, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Summary()
	}
}
