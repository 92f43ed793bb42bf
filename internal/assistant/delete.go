// ABOUTME: Delete/undo engine: removes a whole batch, scoped to its owner.
// ABOUTME: True absence and foreign ownership are reported identically.
package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var batchRefRe = regexp.MustCompile(`#?(\d+)`)

// parseBatchRef picks the batch id out of a delete message. nil means "most
// recent": either an explicit undo/last trigger or no embedded number.
func parseBatchRef(message string) *int64 {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "undo") || strings.Contains(lower, "last") {
		return nil
	}
	m := batchRefRe.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// DeleteWorkout removes the batch the message refers to, if the user owns it,
// and summarizes what was removed.
func (a *Assistant) DeleteWorkout(userID int64, message string) (string, error) {
	ref := parseBatchRef(message)

	var batchID int64
	if ref == nil {
		latest, err := a.store.LatestBatch(userID)
		if err != nil {
			return "", fmt.Errorf("find latest batch: %w", err)
		}
		if len(latest) == 0 {
			return "Nothing to delete.", nil
		}
		batchID = latest[0].BatchID
	} else {
		batchID = *ref
	}

	deleted, err := a.store.DeleteBatch(userID, batchID)
	if err != nil {
		return "", fmt.Errorf("delete batch: %w", err)
	}
	if len(deleted) == 0 {
		return fmt.Sprintf("Batch #%d not found (or not yours).", batchID), nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, s := range deleted {
		name := s.ExerciseName()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return fmt.Sprintf("Deleted batch #%d (%s): %s - %d sets.",
		batchID, formatDate(deleted[0].SetDate), strings.Join(names, ", "), len(deleted)), nil
}
