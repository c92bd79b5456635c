package content

import (
	"fmt"
	"strconv"
	"strings"
)

// HoursGroup é uma sequência de dias consecutivos com o mesmo horário.
type HoursGroup struct {
	Days   []string
	Opens  string
	Closes string
}

// GroupHours junta dias consecutivos com horário idêntico. Dias fechados não
// geram grupo e separam os vizinhos.
func GroupHours(days []DayHours) []HoursGroup {
	var out []HoursGroup
	open := false
	for _, d := range days {
		if d.Closed {
			open = false
			continue
		}
		if open {
			last := &out[len(out)-1]
			if last.Opens == d.Opens && last.Closes == d.Closes {
				last.Days = append(last.Days, d.Day)
				continue
			}
		}
		out = append(out, HoursGroup{Days: []string{d.Day}, Opens: d.Opens, Closes: d.Closes})
		open = true
	}
	return out
}

// Label devolve "Monday-Friday" para grupos e o próprio dia para um só.
func (g HoursGroup) Label() string {
	if len(g.Days) == 1 {
		return g.Days[0]
	}
	return g.Days[0] + "-" + g.Days[len(g.Days)-1]
}

// Range formata o horário em 12h: "9:00 AM - 7:00 PM".
func (g HoursGroup) Range() string {
	return clock12(g.Opens) + " - " + clock12(g.Closes)
}

func clock12(hhmm string) string {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return hhmm
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%s %s", hour, m, suffix)
}
