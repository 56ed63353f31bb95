package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/feed"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// GoalService owns the goals and goal categories tables.
type GoalService struct {
	store      types.Store
	log        *zap.Logger
	goals      *feed.Feed[[]types.Goal]
	categories *feed.Feed[[]types.GoalCategory]
}

// NewGoalService creates a goal service over an attached store.
// A nil logger disables logging.
func NewGoalService(store types.Store, logger *zap.Logger) *GoalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{
		store:      store,
		log:        logger,
		goals:      feed.New[[]types.Goal](),
		categories: feed.New[[]types.GoalCategory](),
	}
}

// Goals returns the feed of non-deleted goal snapshots.
func (s *GoalService) Goals() *feed.Feed[[]types.Goal] { return s.goals }

// Categories returns the feed of goal category snapshots.
func (s *GoalService) Categories() *feed.Feed[[]types.GoalCategory] { return s.categories }

// LoadGoals queries the non-deleted goals and publishes the snapshot.
// Never returns an error; on failure it logs and keeps the prior snapshot.
func (s *GoalService) LoadGoals() {
	tbl, err := s.store.GetTable(types.GoalsTable)
	if err != nil {
		s.log.Error("loading goals", zap.Error(err))
		return
	}
	rows, err := tbl.Fetch(map[string]any{"isDeleted": false})
	if err != nil {
		s.log.Error("loading goals", zap.Error(err))
		return
	}
	goals := make([]types.Goal, 0, len(rows))
	for _, r := range rows {
		goals = append(goals, *(r.(*types.Goal)))
	}
	s.goals.Publish(goals)
}

// LoadCategories queries all goal categories and publishes the snapshot.
func (s *GoalService) LoadCategories() {
	tbl, err := s.store.GetTable(types.GoalCategoriesTable)
	if err != nil {
		s.log.Error("loading goal categories", zap.Error(err))
		return
	}
	rows, err := tbl.Fetch(nil)
	if err != nil {
		s.log.Error("loading goal categories", zap.Error(err))
		return
	}
	cats := make([]types.GoalCategory, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, *(r.(*types.GoalCategory)))
	}
	s.categories.Publish(cats)
}

// AddGoal creates a goal. ID, timestamps, and delete state of the input are
// overwritten. An empty status defaults to active.
func (s *GoalService) AddGoal(input types.Goal) (*types.Goal, error) {
	tbl, err := s.store.GetTable(types.GoalsTable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	goal := input
	goal.ID = ""
	goal.CreatedAt = now
	goal.UpdatedAt = now
	goal.IsDeleted = false
	goal.DeletedAt = nil
	if goal.Status == "" {
		goal.Status = types.GoalStatusActive
	}

	if _, err := tbl.Set("", &goal); err != nil {
		return nil, err
	}
	s.LoadGoals()
	return &goal, nil
}

// UpdateGoal merges the partial update over the stored goal, deleted or not,
// and refreshes UpdatedAt. Callers must check the deleted state themselves.
func (s *GoalService) UpdateGoal(id string, upd types.GoalUpdate) (*types.Goal, error) {
	tbl, err := s.store.GetTable(types.GoalsTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, err
	}
	goal := got.(*types.Goal)

	if upd.Title != nil {
		goal.Title = *upd.Title
	}
	if upd.Description != nil {
		goal.Description = *upd.Description
	}
	if upd.CategoryID != nil {
		goal.CategoryID = *upd.CategoryID
	}
	if upd.TargetDate != nil {
		goal.TargetDate = *upd.TargetDate
	}
	if upd.Status != nil {
		goal.Status = *upd.Status
	}
	goal.UpdatedAt = time.Now()

	if _, err := tbl.Set(id, goal); err != nil {
		return nil, err
	}
	s.LoadGoals()
	return goal, nil
}

// DeleteGoal soft-deletes by default; soft=false physically removes the row.
// Progress entries for the goal are not cascaded.
func (s *GoalService) DeleteGoal(id string, soft bool) error {
	tbl, err := s.store.GetTable(types.GoalsTable)
	if err != nil {
		return err
	}

	if soft {
		got, err := tbl.Get(id)
		if err != nil {
			return err
		}
		goal := got.(*types.Goal)
		now := time.Now()
		goal.IsDeleted = true
		goal.DeletedAt = &now
		goal.UpdatedAt = now
		if _, err := tbl.Set(id, goal); err != nil {
			return err
		}
	} else {
		if err := tbl.Delete(id); err != nil {
			return err
		}
	}
	s.LoadGoals()
	return nil
}

// RestoreGoal clears the soft-delete state.
func (s *GoalService) RestoreGoal(id string) error {
	tbl, err := s.store.GetTable(types.GoalsTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return err
	}
	goal := got.(*types.Goal)
	goal.IsDeleted = false
	goal.DeletedAt = nil
	goal.UpdatedAt = time.Now()
	if _, err := tbl.Set(id, goal); err != nil {
		return err
	}
	s.LoadGoals()
	return nil
}

// AddCategory creates a custom (non-system) goal category.
func (s *GoalService) AddCategory(name, color string) (*types.GoalCategory, error) {
	tbl, err := s.store.GetTable(types.GoalCategoriesTable)
	if err != nil {
		return nil, err
	}
	cat := types.GoalCategory{
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
		IsSystem:  false,
	}
	if _, err := tbl.Set("", &cat); err != nil {
		return nil, err
	}
	s.LoadCategories()
	return &cat, nil
}

// UpdateCategory merges the partial update over the stored category.
func (s *GoalService) UpdateCategory(id string, upd types.CategoryUpdate) (*types.GoalCategory, error) {
	tbl, err := s.store.GetTable(types.GoalCategoriesTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, err
	}
	cat := got.(*types.GoalCategory)
	if upd.Name != nil {
		cat.Name = *upd.Name
	}
	if upd.Color != nil {
		cat.Color = *upd.Color
	}
	if _, err := tbl.Set(id, cat); err != nil {
		return nil, err
	}
	s.LoadCategories()
	return cat, nil
}

// DeleteCategory hard-deletes a custom category. System categories fail with
// ErrSystemCategory.
func (s *GoalService) DeleteCategory(id string) error {
	tbl, err := s.store.GetTable(types.GoalCategoriesTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return err
	}
	if got.(*types.GoalCategory).IsSystem {
		return types.ErrSystemCategory
	}
	if err := tbl.Delete(id); err != nil {
		return err
	}
	s.LoadCategories()
	return nil
}
