package videos

// IndexOf returns the position of the video with the given id, or -1.
func IndexOf(list []Video, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy of list that shares no backing array with it.
func Clone(list []Video) []Video {
	if list == nil {
		return nil
	}
	out := make([]Video, len(list))
	copy(out, list)
	return out
}

// Dedupe returns list without repeated ids, keeping the first occurrence and
// the original order. The second return value lists the dropped ids.
func Dedupe(list []Video) ([]Video, []string) {
	seen := make(map[string]struct{}, len(list))
	out := make([]Video, 0, len(list))
	var dropped []string
	for _, v := range list {
		if _, ok := seen[v.ID]; ok {
			dropped = append(dropped, v.ID)
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out, dropped
}
