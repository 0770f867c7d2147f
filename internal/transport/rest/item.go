package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/catalog-service/internal/app/item/dto"
)

const (
	ItemPath   = "/api/v1/item"
	ItemPathID = ItemPath + "/{id}"
)

type ItemService interface {
	List(ctx context.Context) ([]*dto.Item, error)
	FindFirstByName(ctx context.Context, name string) (*dto.Item, error)
	FindByCategory(ctx context.Context, category string) ([]*dto.Item, error)
	GetByID(ctx context.Context, id string) (*dto.Item, error)
	Save(ctx context.Context, in *dto.Item) (*dto.Item, error)
	Update(ctx context.Context, id string, in *dto.Item) (*dto.Item, error)
	Patch(ctx context.Context, id string, in *dto.Item) (*dto.Item, error)
	DeleteByID(ctx context.Context, id string) error
}

type ItemHandler struct {
	svc ItemService
	log *logrus.Entry
}

func NewItemHandler(svc ItemService, log *logrus.Entry) *ItemHandler {
	return &ItemHandler{svc: svc, log: log.WithField("component", "item_handler")}
}

func (h *ItemHandler) Register(r *mux.Router) {
	r.Handle(ItemPath, serve(h.log, h.list)).Methods(http.MethodGet)
	r.Handle(ItemPath, serve(h.log, h.create)).Methods(http.MethodPost)
	r.Handle(ItemPathID, serve(h.log, h.get)).Methods(http.MethodGet)
	r.Handle(ItemPathID, serve(h.log, h.replace)).Methods(http.MethodPut)
	r.Handle(ItemPathID, serve(h.log, h.patch)).Methods(http.MethodPatch)
	r.Handle(ItemPathID, serve(h.log, h.delete)).Methods(http.MethodDelete)
}

// list serves the whole collection, or filters by ?category= or ?name=.
// An empty result is a 200 with an empty array.
func (h *ItemHandler) list(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		items []*dto.Item
		err   error
	)
	switch {
	case q.Has("category"):
		items, err = h.svc.FindByCategory(ctx, q.Get("category"))
	case q.Has("name"):
		var it *dto.Item
		it, err = h.svc.FindFirstByName(ctx, q.Get("name"))
		items = []*dto.Item{}
		if it != nil {
			items = append(items, it)
		}
	default:
		items, err = h.svc.List(ctx)
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) get(w http.ResponseWriter, r *http.Request) error {
	it, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	if it == nil {
		return errNotFound()
	}
	return writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) create(w http.ResponseWriter, r *http.Request) error {
	var in dto.Item
	if err := decodeBody(w, r, &in); err != nil {
		return err
	}
	if violations := in.Validate(); len(violations) > 0 {
		return errValidation(violations)
	}

	saved, err := h.svc.Save(r.Context(), &in)
	if err != nil {
		return err
	}
	w.Header().Set("Location", location(ItemPathID, saved.ID))
	w.WriteHeader(http.StatusCreated)
	return nil
}

func (h *ItemHandler) replace(w http.ResponseWriter, r *http.Request) error {
	var in dto.Item
	if err := decodeBody(w, r, &in); err != nil {
		return err
	}
	if violations := in.Validate(); len(violations) > 0 {
		return errValidation(violations)
	}

	updated, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], &in)
	if err != nil {
		return err
	}
	if updated == nil {
		return errNotFound()
	}
	return noContent(w)
}

func (h *ItemHandler) patch(w http.ResponseWriter, r *http.Request) error {
	var in dto.Item
	if err := decodeBody(w, r, &in); err != nil {
		return err
	}

	patched, err := h.svc.Patch(r.Context(), mux.Vars(r)["id"], &in)
	if err != nil {
		return err
	}
	if patched == nil {
		return errNotFound()
	}
	return noContent(w)
}

func (h *ItemHandler) delete(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	existing, err := h.svc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errNotFound()
	}
	if err := h.svc.DeleteByID(ctx, id); err != nil {
		return err
	}
	return noContent(w)
}
