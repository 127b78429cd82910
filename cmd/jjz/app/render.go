package app

import (
	"context"
	"strconv"

	"github.com/jjzio/jjz/pkg/output"
	"github.com/jjzio/jjz/pkg/session"
	"github.com/jjzio/jjz/pkg/store"
)

// workspaceChanges best-effort queries a session's changed-file count for
// display; a query failure (e.g. the workspace directory is gone) renders
// as zero rather than failing the whole command.
func workspaceChanges(ctx context.Context, e *session.Engine, s store.Session) int {
	status, err := e.VCS.Status(ctx, s.WorkspacePath)
	if err != nil {
		return 0
	}
	return status.ChangedFiles
}

// workspaceChangesByName computes workspaceChanges for every session,
// keyed by name, for `list`'s rendering.
func workspaceChangesByName(ctx context.Context, e *session.Engine, sessions []store.Session) map[string]int {
	changes := make(map[string]int, len(sessions))
	for _, s := range sessions {
		changes[s.Name] = workspaceChanges(ctx, e, s)
	}
	return changes
}

type sessionJSON struct {
	Name          string  `json:"name"`
	WorkspacePath string  `json:"workspace_path"`
	TabName       string  `json:"tab_name"`
	Branch        string  `json:"branch,omitempty"`
	IssueID       string  `json:"issue_id,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
	RemovalStatus *string `json:"removal_status"`
	RemovalError  *string `json:"removal_error"`
}

func toSessionJSON(s store.Session) sessionJSON {
	return sessionJSON{
		Name:          s.Name,
		WorkspacePath: s.WorkspacePath,
		TabName:       s.TabName,
		Branch:        s.Branch,
		IssueID:       s.IssueID,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		RemovalStatus: nullableString(s.RemovalStatus),
		RemovalError:  nullableString(s.RemovalError),
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sessionRow builds the minimal pipe-friendly row, in the documented field
// order `name, status, branch, changes, issue_id` (SPEC_FULL.md §6).
func sessionRow(s store.Session, changes int) []string {
	return []string{s.Name, string(s.Status), s.Branch, strconv.Itoa(changes), s.IssueID}
}

var sessionHeaders = []string{"Name", "Status", "Branch", "Changes", "IssueID"}

// sessionResult builds the output.Result for a single-session command
// (add, focus) shared across all three rendering modes. changes is the
// workspace's changed-file count, from a best-effort VCS.Status call.
func sessionResult(s store.Session, changes int) output.Result {
	return output.Result{
		Type:    "session",
		Flavor:  output.FlavorSingle,
		JSON:    toSessionJSON(s),
		Headers: sessionHeaders,
		Rows:    [][]string{sessionRow(s, changes)},
	}
}

// sessionListResult builds the output.Result for `list`. changes maps
// session name to its workspace's changed-file count.
func sessionListResult(sessions []store.Session, changes map[string]int) output.Result {
	data := make([]sessionJSON, 0, len(sessions))
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		data = append(data, toSessionJSON(s))
		rows = append(rows, sessionRow(s, changes[s.Name]))
	}
	return output.Result{
		Type:    "session-list",
		Flavor:  output.FlavorArray,
		JSON:    map[string]any{"sessions": data},
		Headers: sessionHeaders,
		Rows:    rows,
	}
}

// doneResult builds the output.Result for `done`, including the dry_run flag.
func doneResult(res session.DoneResult) output.Result {
	payload := map[string]any{
		"session": toSessionJSON(res.Session),
		"dry_run": res.DryRun,
	}
	return output.Result{
		Type:    "session-done",
		Flavor:  output.FlavorSingle,
		JSON:    payload,
		Headers: []string{"Name", "Status", "DryRun"},
		Rows:    [][]string{{res.Session.Name, string(res.Session.Status), strconv.FormatBool(res.DryRun)}},
	}
}
