package worklog

import "regexp"

var queueKeyPattern = regexp.MustCompile(`^([A-Z]+)-\d+$`)

// QueueFromKey extracts the queue of an issue key such as "TASK-12".
func QueueFromKey(issueKey string) (string, bool) {
	match := queueKeyPattern.FindStringSubmatch(issueKey)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// PrimaryQueue returns the queue most worklogs were recorded in. Ties go to
// the queue seen first.
func PrimaryQueue(worklogs []Worklog) (string, bool) {
	counts := make(map[string]int)
	var order []string

	for _, w := range worklogs {
		queue, ok := QueueFromKey(w.Issue.Key)
		if !ok {
			continue
		}
		if _, seen := counts[queue]; !seen {
			order = append(order, queue)
		}
		counts[queue]++
	}

	primary, best := "", 0
	for _, queue := range order {
		if counts[queue] > best {
			primary, best = queue, counts[queue]
		}
	}
	return primary, best > 0
}
