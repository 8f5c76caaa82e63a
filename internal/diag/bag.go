package diag

import (
	"sort"

	"fortio.org/safecast"
)

// Bag collects diagnostics of one generation invocation.
// It is not safe for concurrent use: each invocation owns its own Bag.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means the
// largest representable limit.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil || max <= 0 {
		limit = ^uint16(0)
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 16)),
		max:   limit,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// Dropped returns how many diagnostics were rejected by the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	return b.ErrorCount() > 0
}

// ErrorCount считает диагностики уровня Error.
func (b *Bag) ErrorCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			n++
		}
	}
	return n
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag.
// Увеличивает max, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if limit, err := safecast.Conv[uint16](newTotal); err == nil && limit > b.max {
		b.max = limit
	} else if err != nil {
		b.max = ^uint16(0)
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// PromoteWarnings поднимает предупреждения до ошибок (--warnings-as-errors).
func (b *Bag) PromoteWarnings() {
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			b.items[i].Severity = SevError
		}
	}
}

// Sort сортирует диагностики по: file, line, type, member, severity (desc), code (asc)
// для стабильного и детерминированного порядка вывода.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		si, sj := b.items[i].Subject, b.items[j].Subject
		if si.File != sj.File {
			return si.File < sj.File
		}
		if si.Line != sj.Line {
			return si.Line < sj.Line
		}
		if si.Type != sj.Type {
			return si.Type < sj.Type
		}
		if si.Member != sj.Member {
			return si.Member < sj.Member
		}
		di, dj := b.items[i], b.items[j]
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// простая дедупликация (по Code+Subject+Message)
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := keyOf(d.Code, d.Severity, d.Subject, d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
