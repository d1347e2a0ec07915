package employee

import "strings"

// Filter returns the employees whose full name, employee id, email or
// department contains query, case-insensitively, in their original order.
// A blank query returns all unchanged.
func Filter(all []Employee, query string) []Employee {
	if strings.TrimSpace(query) == "" {
		return all
	}
	q := strings.ToLower(query)
	matches := make([]Employee, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.FullName), q) ||
			strings.Contains(strings.ToLower(e.EmployeeID), q) ||
			strings.Contains(strings.ToLower(e.Email), q) ||
			strings.Contains(strings.ToLower(e.Department), q) {
			matches = append(matches, e)
		}
	}
	return matches
}

// RemoveByID returns a new slice without the employee whose database id is id.
func RemoveByID(all []Employee, id int64) []Employee {
	out := make([]Employee, 0, len(all))
	for _, e := range all {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// FindByID looks up an employee by database id.
func FindByID(all []Employee, id int64) (Employee, bool) {
	for _, e := range all {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// NameOf resolves the display name for an employee label, falling back to
// the label itself when nobody in all carries it.
func NameOf(all []Employee, employeeID string) string {
	for _, e := range all {
		if e.EmployeeID == employeeID {
			return e.FullName
		}
	}
	return employeeID
}

// Recent returns at most n employees from the head of the list.
func Recent(all []Employee, n int) []Employee {
	if len(all) <= n {
		return all
	}
	return all[:n]
}
