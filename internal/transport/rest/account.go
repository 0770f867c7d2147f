package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/catalog-service/internal/app/account/dto"
)

const (
	AccountPath   = "/api/v1/account"
	AccountPathID = AccountPath + "/{id}"
)

type AccountService interface {
	List(ctx context.Context) ([]*dto.Account, error)
	FindByName(ctx context.Context, name string) ([]*dto.Account, error)
	GetByID(ctx context.Context, id string) (*dto.Account, error)
	Save(ctx context.Context, in *dto.Account) (*dto.Account, error)
	Update(ctx context.Context, id string, in *dto.Account) (*dto.Account, error)
	Patch(ctx context.Context, id string, in *dto.Account) (*dto.Account, error)
	DeleteByID(ctx context.Context, id string) error
}

type AccountHandler struct {
	svc AccountService
	log *logrus.Entry
}

func NewAccountHandler(svc AccountService, log *logrus.Entry) *AccountHandler {
	return &AccountHandler{svc: svc, log: log.WithField("component", "account_handler")}
}

func (h *AccountHandler) Register(r *mux.Router) {
	r.Handle(AccountPath, serve(h.log, h.list)).Methods(http.MethodGet)
	r.Handle(AccountPath, serve(h.log, h.create)).Methods(http.MethodPost)
	r.Handle(AccountPathID, serve(h.log, h.get)).Methods(http.MethodGet)
	r.Handle(AccountPathID, serve(h.log, h.replace)).Methods(http.MethodPut)
	r.Handle(AccountPathID, serve(h.log, h.patch)).Methods(http.MethodPatch)
	r.Handle(AccountPathID, serve(h.log, h.delete)).Methods(http.MethodDelete)
}

func (h *AccountHandler) list(w http.ResponseWriter, r *http.Request) error {
	var (
		accounts []*dto.Account
		err      error
	)
	if q := r.URL.Query(); q.Has("name") {
		accounts, err = h.svc.FindByName(r.Context(), q.Get("name"))
	} else {
		accounts, err = h.svc.List(r.Context())
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) get(w http.ResponseWriter, r *http.Request) error {
	a, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	if a == nil {
		return errNotFound()
	}
	return writeJSON(w, http.StatusOK, a)
}

func (h *AccountHandler) create(w http.ResponseWriter, r *http.Request) error {
	var in dto.Account
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
	w.Header().Set("Location", location(AccountPathID, saved.ID))
	w.WriteHeader(http.StatusCreated)
	return nil
}

func (h *AccountHandler) replace(w http.ResponseWriter, r *http.Request) error {
	var in dto.Account
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

func (h *AccountHandler) patch(w http.ResponseWriter, r *http.Request) error {
	var in dto.Account
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

func (h *AccountHandler) delete(w http.ResponseWriter, r *http.Request) error {
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
