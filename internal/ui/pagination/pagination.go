// Пакет pagination — построение панели страниц для списка новостей.
// Видимые номера: первая, последняя, текущая и соседние с ней;
// между несмежными номерами ставится многоточие.
package pagination

// Item — элемент панели: номер страницы или многоточие.
type Item struct {
	// Page — номер страницы (0 для многоточия)
	Page int
	// Ellipsis — разрыв между номерами
	Ellipsis bool
	// Current — текущая страница
	Current bool
}

// Pagination — состояние панели страниц.
type Pagination struct {
	Current int
	Total   int
	HasPrev bool
	HasNext bool
	Prev    int
	Next    int
	Items   []Item
}

// Build строит панель для страницы current из total.
// current ограничивается диапазоном 1..total; при total <= 1 элементов нет.
func Build(current, total int) Pagination {
	if total < 1 {
		total = 1
	}
	current = Clamp(current, total)

	p := Pagination{
		Current: current,
		Total:   total,
		HasPrev: current > 1,
		HasNext: current < total,
	}
	if p.HasPrev {
		p.Prev = current - 1
	}
	if p.HasNext {
		p.Next = current + 1
	}
	if total <= 1 {
		return p
	}

	visible := make([]int, 0, 5)
	for _, n := range []int{1, current - 1, current, current + 1, total} {
		if n < 1 || n > total {
			continue
		}
		if len(visible) > 0 && visible[len(visible)-1] >= n {
			continue
		}
		visible = append(visible, n)
	}

	for i, n := range visible {
		if i > 0 && n-visible[i-1] > 1 {
			p.Items = append(p.Items, Item{Ellipsis: true})
		}
		p.Items = append(p.Items, Item{Page: n, Current: n == current})
	}
	return p
}

// Clamp ограничивает номер страницы диапазоном 1..total.
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
