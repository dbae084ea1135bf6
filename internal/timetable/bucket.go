package timetable

import "sort"

// ClassesForDay 筛选指定日的课程并按开始时间升序排列。
// HH:MM 定长零填充，字符串比较即时间比较；开始时间相同的保持输入顺序。
func ClassesForDay(entries []Entry, day Day) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Day == day {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime < result[j].StartTime
	})
	return result
}
