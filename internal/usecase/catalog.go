package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

// CatalogUseCase validates writes to the public catalog: courses, taxonomies,
// partner companies and testimonials. Reads go straight to the repositories.
type CatalogUseCase struct {
	Courses      entity.CourseRepositoryInterface
	Categories   entity.TaxonomyRepositoryInterface
	Modalities   entity.TaxonomyRepositoryInterface
	Companies    entity.CompanyRepositoryInterface
	Testimonials entity.TestimonialRepositoryInterface
}

func (uc *CatalogUseCase) CreateCourse(ctx context.Context, in entity.CoursePatch) (*entity.Course, error) {
	var errs []ValidationError
	slug := deref(in.Slug)
	errs = append(errs, ValidateSlug(slug)...)
	if strings.TrimSpace(deref(in.Title)) == "" {
		errs = append(errs, ValidationError{"title", "is required"})
	}
	errs = append(errs, validateCourseNumbers(in)...)
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	c := entity.NewCourse(slug, strings.TrimSpace(*in.Title))
	c.Summary = deref(in.Summary)
	c.Description = deref(in.Description)
	c.CategorySlug = deref(in.CategorySlug)
	c.ModalitySlug = deref(in.ModalitySlug)
	c.ImageURL = deref(in.ImageURL)
	if in.DurationHours != nil {
		c.DurationHours = *in.DurationHours
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.Topics != nil {
		c.Topics = cleanTopics(*in.Topics)
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}

	if err := uc.Courses.Create(ctx, c); err != nil {
		return nil, Classify(err)
	}
	return c, nil
}

func (uc *CatalogUseCase) UpdateCourse(ctx context.Context, id string, patch entity.CoursePatch) (*entity.Course, error) {
	var errs []ValidationError
	if patch.Slug != nil {
		errs = append(errs, ValidateSlug(*patch.Slug)...)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		errs = append(errs, ValidationError{"title", "must not be empty"})
	}
	errs = append(errs, validateCourseNumbers(patch)...)
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	if patch.Topics != nil {
		topics := cleanTopics(*patch.Topics)
		patch.Topics = &topics
	}

	c, err := uc.Courses.Update(ctx, id, patch)
	if err != nil {
		return nil, Classify(err)
	}
	return c, nil
}

func validateCourseNumbers(p entity.CoursePatch) []ValidationError {
	var errs []ValidationError
	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, ValidationError{"price", "must not be negative"})
	}
	if p.DurationHours != nil && *p.DurationHours < 0 {
		errs = append(errs, ValidationError{"duration_hours", "must not be negative"})
	}
	return errs
}

func cleanTopics(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (uc *CatalogUseCase) taxonomies(kind string) entity.TaxonomyRepositoryInterface {
	if kind == "modalities" {
		return uc.Modalities
	}
	return uc.Categories
}

// CreateTaxonomy writes a category or a modality, depending on kind.
func (uc *CatalogUseCase) CreateTaxonomy(ctx context.Context, kind string, in entity.TaxonomyPatch) (*entity.Taxonomy, error) {
	slug := deref(in.Slug)
	errs := ValidateSlug(slug)
	if strings.TrimSpace(deref(in.Name)) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	t := entity.NewTaxonomy(slug, strings.TrimSpace(*in.Name))
	if in.SortOrder != nil {
		t.SortOrder = *in.SortOrder
	}
	if in.Active != nil {
		t.Active = *in.Active
	}
	if err := uc.taxonomies(kind).Create(ctx, t); err != nil {
		return nil, Classify(err)
	}
	return t, nil
}

func (uc *CatalogUseCase) UpdateTaxonomy(ctx context.Context, kind, id string, patch entity.TaxonomyPatch) (*entity.Taxonomy, error) {
	var errs []ValidationError
	if patch.Slug != nil {
		errs = ValidateSlug(*patch.Slug)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs = append(errs, ValidationError{"name", "must not be empty"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	t, err := uc.taxonomies(kind).Update(ctx, id, patch)
	if err != nil {
		return nil, Classify(err)
	}
	return t, nil
}

func (uc *CatalogUseCase) CreateCompany(ctx context.Context, in entity.CompanyPatch) (*entity.Company, error) {
	slug := deref(in.Slug)
	errs := ValidateSlug(slug)
	if strings.TrimSpace(deref(in.Name)) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	c := entity.NewCompany(strings.TrimSpace(*in.Name), slug)
	c.LogoURL = deref(in.LogoURL)
	c.Website = deref(in.Website)
	if in.Active != nil {
		c.Active = *in.Active
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	if err := uc.Companies.Create(ctx, c); err != nil {
		return nil, Classify(err)
	}
	return c, nil
}

func (uc *CatalogUseCase) UpdateCompany(ctx context.Context, id string, patch entity.CompanyPatch) (*entity.Company, error) {
	var errs []ValidationError
	if patch.Slug != nil {
		errs = ValidateSlug(*patch.Slug)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs = append(errs, ValidationError{"name", "must not be empty"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	c, err := uc.Companies.Update(ctx, id, patch)
	if err != nil {
		return nil, Classify(err)
	}
	return c, nil
}

func (uc *CatalogUseCase) CreateTestimonial(ctx context.Context, in entity.TestimonialPatch) (*entity.Testimonial, error) {
	var errs []ValidationError
	if strings.TrimSpace(deref(in.Author)) == "" {
		errs = append(errs, ValidationError{"author", "is required"})
	}
	if strings.TrimSpace(deref(in.Quote)) == "" {
		errs = append(errs, ValidationError{"quote", "is required"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	t := entity.NewTestimonial(strings.TrimSpace(*in.Author), strings.TrimSpace(*in.Quote))
	t.Role = deref(in.Role)
	t.Company = deref(in.Company)
	t.AvatarURL = deref(in.AvatarURL)
	if in.Published != nil {
		t.Published = *in.Published
	}
	if in.SortOrder != nil {
		t.SortOrder = *in.SortOrder
	}
	if err := uc.Testimonials.Create(ctx, t); err != nil {
		return nil, Classify(err)
	}
	return t, nil
}

func (uc *CatalogUseCase) UpdateTestimonial(ctx context.Context, id string, patch entity.TestimonialPatch) (*entity.Testimonial, error) {
	var errs []ValidationError
	if patch.Author != nil && strings.TrimSpace(*patch.Author) == "" {
		errs = append(errs, ValidationError{"author", "must not be empty"})
	}
	if patch.Quote != nil && strings.TrimSpace(*patch.Quote) == "" {
		errs = append(errs, ValidationError{"quote", "must not be empty"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	t, err := uc.Testimonials.Update(ctx, id, patch)
	if err != nil {
		return nil, Classify(err)
	}
	return t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
