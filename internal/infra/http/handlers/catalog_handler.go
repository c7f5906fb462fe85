package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

// CatalogHandler serves the public site (active/published rows only) and the
// admin catalog screens (everything).
type CatalogHandler struct {
	Courses      entity.CourseRepositoryInterface
	Categories   entity.TaxonomyRepositoryInterface
	Modalities   entity.TaxonomyRepositoryInterface
	Companies    entity.CompanyRepositoryInterface
	Testimonials entity.TestimonialRepositoryInterface
	UC           *usecase.CatalogUseCase
}

func (h *CatalogHandler) listCourses(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	q := r.URL.Query()
	filter := entity.CourseFilter{
		Category:   q.Get("category"),
		Modality:   q.Get("modality"),
		ActiveOnly: activeOnly,
		Query:      q.Get("q"),
		Page:       parsePage(r),
	}
	courses, total, err := h.Courses.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendList(w, courses, total)
}

// Public

func (h *CatalogHandler) PublicCourses(w http.ResponseWriter, r *http.Request) {
	h.listCourses(w, r, true)
}

func (h *CatalogHandler) PublicCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.Courses.FindActiveBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, course)
}

func (h *CatalogHandler) PublicCategories(w http.ResponseWriter, r *http.Request) {
	h.listTaxonomies(w, r, h.Categories, true)
}

func (h *CatalogHandler) PublicModalities(w http.ResponseWriter, r *http.Request) {
	h.listTaxonomies(w, r, h.Modalities, true)
}

func (h *CatalogHandler) PublicCompanies(w http.ResponseWriter, r *http.Request) {
	h.listCompanies(w, r, true)
}

func (h *CatalogHandler) PublicTestimonials(w http.ResponseWriter, r *http.Request) {
	h.listTestimonials(w, r, true)
}

// Admin: courses

func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	h.listCourses(w, r, false)
}

func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.Courses.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, course)
}

func (h *CatalogHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in entity.CoursePatch
	if !decodeJSON(w, r, &in) {
		return
	}
	course, err := h.UC.CreateCourse(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusCreated, course)
}

func (h *CatalogHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var patch entity.CoursePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	course, err := h.UC.UpdateCourse(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusOK, course)
}

func (h *CatalogHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.Courses.Delete)
}

// Admin: categories and modalities share handlers; the route decides the table.

func (h *CatalogHandler) listTaxonomies(w http.ResponseWriter, r *http.Request, repo entity.TaxonomyRepositoryInterface, activeOnly bool) {
	rows, err := repo.List(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendList(w, rows, len(rows))
}

func (h *CatalogHandler) taxonomyRepo(kind string) entity.TaxonomyRepositoryInterface {
	if kind == "modalities" {
		return h.Modalities
	}
	return h.Categories
}

func (h *CatalogHandler) ListTaxonomies(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.listTaxonomies(w, r, h.taxonomyRepo(kind), false)
	}
}

func (h *CatalogHandler) CreateTaxonomy(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in entity.TaxonomyPatch
		if !decodeJSON(w, r, &in) {
			return
		}
		t, err := h.UC.CreateTaxonomy(r.Context(), kind, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		SendResponse(w, http.StatusCreated, t)
	}
}

func (h *CatalogHandler) UpdateTaxonomy(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch entity.TaxonomyPatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		t, err := h.UC.UpdateTaxonomy(r.Context(), kind, chi.URLParam(r, "id"), patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		SendResponse(w, http.StatusOK, t)
	}
}

func (h *CatalogHandler) DeleteTaxonomy(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleteWith(w, r, h.taxonomyRepo(kind).Delete)
	}
}

// Admin: companies

func (h *CatalogHandler) listCompanies(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	rows, total, err := h.Companies.List(r.Context(), activeOnly, parsePage(r))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendList(w, rows, total)
}

func (h *CatalogHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	h.listCompanies(w, r, false)
}

func (h *CatalogHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.Companies.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, c)
}

func (h *CatalogHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var in entity.CompanyPatch
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.UC.CreateCompany(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusCreated, c)
}

func (h *CatalogHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var patch entity.CompanyPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	c, err := h.UC.UpdateCompany(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusOK, c)
}

func (h *CatalogHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.Companies.Delete)
}

// Admin: testimonials

func (h *CatalogHandler) listTestimonials(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	rows, total, err := h.Testimonials.List(r.Context(), publishedOnly, parsePage(r))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendList(w, rows, total)
}

func (h *CatalogHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	h.listTestimonials(w, r, false)
}

func (h *CatalogHandler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	t, err := h.Testimonials.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, t)
}

func (h *CatalogHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var in entity.TestimonialPatch
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.UC.CreateTestimonial(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusCreated, t)
}

func (h *CatalogHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var patch entity.TestimonialPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	t, err := h.UC.UpdateTestimonial(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusOK, t)
}

func (h *CatalogHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.Testimonials.Delete)
}
