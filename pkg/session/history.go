package session

import (
	"fmt"

	"github.com/matzehuels/webgraph/pkg/errors"
)

// Undo reverts the latest active action. It returns false when there is
// nothing to undo or the entry is malformed; the history boundary moves only
// on success.
func (s *Session) Undo() (bool, error) {
	if err := s.historyReady(); err != nil {
		return false, err
	}
	a, ok := s.history.LatestActive()
	if !ok {
		return false, nil
	}
	if !s.revert(a) {
		s.log.Warn("cannot undo malformed action", "kind", a.Kind())
		s.hooks.OnUndo(string(a.Kind()), false)
		return false, nil
	}
	s.history.MarkLatestActiveAsReverted()
	s.redraw()
	s.log.Debug("undo", "kind", a.Kind(), "boundary", s.history.Boundary())
	s.hooks.OnUndo(string(a.Kind()), true)
	return true, nil
}

// Redo re-applies the earliest reverted action. Same contract as
// [Session.Undo].
func (s *Session) Redo() (bool, error) {
	if err := s.historyReady(); err != nil {
		return false, err
	}
	a, ok := s.history.LatestReverted()
	if !ok {
		return false, nil
	}
	if !s.reapply(a) {
		s.log.Warn("cannot redo malformed action", "kind", a.Kind())
		s.hooks.OnRedo(string(a.Kind()), false)
		return false, nil
	}
	s.history.MarkLatestRevertedAsActive()
	s.redraw()
	s.log.Debug("redo", "kind", a.Kind(), "boundary", s.history.Boundary())
	s.hooks.OnRedo(string(a.Kind()), true)
	return true, nil
}

// ClearHistory drops every recorded action.
func (s *Session) ClearHistory() (bool, error) {
	if err := s.historyReady(); err != nil {
		return false, err
	}
	s.history.Clear()
	return true, nil
}

func (s *Session) historyReady() error {
	if !s.active {
		return errors.New(errors.ErrCodeInactive, "history requires an active session")
	}
	if s.history == nil {
		return errors.New(errors.ErrCodeHistoryDisabled, "history is disabled")
	}
	return nil
}

// revert applies the inverse of a. It reports false, changing nothing, when
// the payload it needs is missing.
func (s *Session) revert(a Action) bool {
	switch a := a.(type) {
	case AppModeAction:
		if a.Old == "" {
			return false
		}
		s.cfg.AppMode = a.Old
	case NodeUpsertAction:
		if a.Old == nil {
			return false
		}
		for _, n := range a.Old.Nodes {
			if err := s.g.ReplaceNodeAttributes(n.Key, n.Attributes); err != nil {
				s.log.Warn("restore node failed", "node", n.Key, "err", err)
			}
		}
		s.dropCreated(a.Old.CreatedNodes)
	case NodeDropAction:
		if a.Old == nil {
			return false
		}
		s.restoreNodes(a.Old)
	case EdgeUpsertAction:
		if a.Old == nil {
			return false
		}
		s.revertEdgeMerge(a.Old)
	case EdgeReplaceAction:
		if a.Old == nil {
			return false
		}
		s.revertEdgeReplace(a.Old)
	case EdgeRenderToggleAction:
		if a.Old == nil {
			return false
		}
		s.hideEdges = *a.Old
		s.applyToggles()
	case ImportantEdgeRenderToggleAction:
		if a.Old == nil {
			return false
		}
		s.justImportant = a.Old.JustImportant
		s.hideEdges = a.Old.HideEdges
		s.applyToggles()
	case NodeTypeAction:
		if a.Old == "" {
			return false
		}
		s.applyNodeType(a.Old)
	case LayoutAction:
		if a.Old == nil {
			return false
		}
		s.moveTo(a.Old)
	default:
		panic(fmt.Sprintf("session: unhandled action %T", a))
	}
	return true
}

// reapply applies a again from its New payload.
func (s *Session) reapply(a Action) bool {
	switch a := a.(type) {
	case AppModeAction:
		if a.New == "" {
			return false
		}
		s.cfg.AppMode = a.New
	case NodeUpsertAction:
		if a.New == nil {
			return false
		}
		s.mergeNodes(a.New)
	case NodeDropAction:
		if a.Old == nil {
			return false
		}
		keys := make([]string, len(a.Old.Nodes))
		for i, n := range a.Old.Nodes {
			keys[i] = n.Key
		}
		s.dropNodes(keys)
	case EdgeUpsertAction:
		if a.New == nil {
			return false
		}
		s.mergeEdges(a.New)
	case EdgeReplaceAction:
		if a.New == nil {
			return false
		}
		s.g.ClearEdges()
		s.highlightedEdges.Clear()
		s.mergeEdges(a.New)
	case EdgeRenderToggleAction:
		if a.New == nil {
			return false
		}
		s.hideEdges = *a.New
		s.applyToggles()
	case ImportantEdgeRenderToggleAction:
		if a.New == nil {
			return false
		}
		s.justImportant = a.New.JustImportant
		s.hideEdges = a.New.HideEdges
		s.applyToggles()
	case NodeTypeAction:
		if a.New == "" {
			return false
		}
		s.applyNodeType(a.New)
	case LayoutAction:
		if a.New == nil {
			return false
		}
		s.moveTo(a.New)
	default:
		panic(fmt.Sprintf("session: unhandled action %T", a))
	}
	return true
}
