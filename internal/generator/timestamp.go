package generator

import (
	"fmt"
	"strings"
)

// RenderTimestamp renders the plan as timestamped shot clauses:
// [0s: ...]; [2s: ...]; ... Static movement, static pose and absent effects
// are omitted so no clause is ever empty.
func RenderTimestamp(shots []Shot) string {
	parts := make([]string, 0, len(shots))

	for _, shot := range shots {
		var clauses []string

		if shot.CameraMovement != "static" {
			clauses = append(clauses, fmt.Sprintf("%s to %s", shot.CameraMovement, shot.CameraAngle))
		} else {
			clauses = append(clauses, shot.CameraAngle)
		}

		if shot.SubjectAction != "static pose" {
			clauses = append(clauses, "as subject "+shot.SubjectAction)
		}

		if shot.Effects != "" {
			clauses = append(clauses, "with "+shot.Effects)
		}

		if shot.Description != "" {
			clauses = append(clauses, shot.Description)
		}

		parts = append(parts, fmt.Sprintf("[%ds: %s]", shot.StartTime, strings.Join(clauses, ", ")))
	}

	return strings.Join(parts, "; ")
}
