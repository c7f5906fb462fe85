package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/capacita-crm/internal/entity"
)

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, c *entity.Course) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseRepository) FindActiveBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context, f entity.CourseFilter) ([]*entity.Course, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*entity.Course), args.Int(1), args.Error(2)
}

func (m *MockCourseRepository) Update(ctx context.Context, id string, p entity.CoursePatch) (*entity.Course, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCatalog_CreateCourse(t *testing.T) {
	ctx := context.Background()
	courses := new(MockCourseRepository)
	uc := &CatalogUseCase{Courses: courses}

	topics := []string{" Tablas dinámicas ", "", "Macros"}
	courses.On("Create", ctx, mock.MatchedBy(func(c *entity.Course) bool {
		return c.Slug == "excel-avanzado" && c.Active && len(c.Topics) == 2 && c.Topics[0] == "Tablas dinámicas"
	})).Return(nil)

	c, err := uc.CreateCourse(ctx, entity.CoursePatch{
		Slug:   strPtr("excel-avanzado"),
		Title:  strPtr("Excel avanzado"),
		Topics: &topics,
	})
	require.NoError(t, err)
	assert.Equal(t, "Excel avanzado", c.Title)
}

func TestCatalog_CreateCourseValidation(t *testing.T) {
	uc := &CatalogUseCase{Courses: new(MockCourseRepository)}
	price := -10.0

	_, err := uc.CreateCourse(context.Background(), entity.CoursePatch{Slug: strPtr("Excel Avanzado"), Price: &price})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug")
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "price")
}

func TestCatalog_SlugConflict(t *testing.T) {
	ctx := context.Background()
	courses := new(MockCourseRepository)
	uc := &CatalogUseCase{Courses: courses}

	courses.On("Update", ctx, "c1", mock.Anything).Return(nil, entity.ErrSlugAlreadyExists)

	_, err := uc.UpdateCourse(ctx, "c1", entity.CoursePatch{Slug: strPtr("excel")})
	assert.True(t, assertDomainError(err, KindConflict, CodeSlugExists))
}
