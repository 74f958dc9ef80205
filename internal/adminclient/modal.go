package adminclient

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Mode tells whether a modal creates or edits a record
type Mode int

const (
	ModeAdd Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "add"
}

// RecordStore is what a modal reads and writes through; every Resource is one
type RecordStore[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	Add(ctx context.Context, record T) (*T, error)
	Update(ctx context.Context, record T) (*T, error)
}

// ValidationError lists the fields that failed their rules, keyed by json
// name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid form: %s", strings.Join(names, ", "))
}

// ModalState is a snapshot of a modal
type ModalState[T any] struct {
	Visible     bool
	Mode        Mode
	Form        T
	FieldErrors map[string]string
	Toast       string
}

// Modal is the create/update form of one record. Submit validates locally
// and only reaches the server with a valid form; an update always sends
// the whole form.
type Modal[T any] struct {
	store    RecordStore[T]
	defaults func() T
	validate *validator.Validate
	logger   *zap.Logger

	// OnSuccess runs after a successful submit, e.g. the table refetch
	OnSuccess func(ctx context.Context) error
	// prepare adjusts the snapshot right before it is validated and sent
	prepare func(form *T)
	// loaded runs after Open has set the form
	loaded func(form T)

	mu          sync.Mutex
	visible     bool
	mode        Mode
	form        T
	fieldErrors map[string]string
	toast       string
}

// NewModal creates a closed modal. rules maps struct field names to
// validator tags; types that carry validate tags can pass nil. A nil
// defaults yields the zero record.
func NewModal[T any](store RecordStore[T], rules map[string]string, defaults func() T, logger *zap.Logger) *Modal[T] {
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Modal[T]{
		store:    store,
		defaults: defaults,
		validate: newFormValidator[T](rules),
		logger:   logger,
	}
}

func newFormValidator[T any](rules map[string]string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if len(rules) > 0 {
		var zero T
		v.RegisterStructValidationMapRules(rules, zero)
	}
	return v
}

// Open shows the modal. Add starts from the defaults; update loads record
// id first and stays closed when that fails.
func (m *Modal[T]) Open(ctx context.Context, mode Mode, id int64) error {
	form := m.defaults()
	if mode == ModeUpdate {
		rec, err := m.store.GetByID(ctx, id)
		if err != nil {
			m.fail("failed to load record", err)
			return err
		}
		form = *rec
	}

	m.mu.Lock()
	m.visible = true
	m.mode = mode
	m.form = form
	m.fieldErrors = nil
	m.toast = ""
	loaded := m.loaded
	m.mu.Unlock()

	if loaded != nil {
		loaded(form)
	}
	return nil
}

// Close hides the modal without saving
func (m *Modal[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
}

// Form returns a copy of the form
func (m *Modal[T]) Form() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// Edit changes the form in place
func (m *Modal[T]) Edit(fn func(form *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.form)
}

// State returns the current snapshot
func (m *Modal[T]) State() ModalState[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ModalState[T]{
		Visible:     m.visible,
		Mode:        m.mode,
		Form:        m.form,
		FieldErrors: m.fieldErrors,
		Toast:       m.toast,
	}
}

// Submit validates the form and saves it. On success the modal closes and
// OnSuccess runs; on any failure it stays open.
func (m *Modal[T]) Submit(ctx context.Context) (*T, error) {
	m.mu.Lock()
	form := m.form
	mode := m.mode
	prepare := m.prepare
	m.mu.Unlock()

	if prepare != nil {
		prepare(&form)
	}

	if fields := m.check(form); len(fields) > 0 {
		m.mu.Lock()
		m.fieldErrors = fields
		m.mu.Unlock()
		return nil, &ValidationError{Fields: fields}
	}

	var saved *T
	var err error
	if mode == ModeUpdate {
		saved, err = m.store.Update(ctx, form)
	} else {
		saved, err = m.store.Add(ctx, form)
	}
	if err != nil {
		m.fail("failed to save record", err)
		return nil, err
	}

	m.mu.Lock()
	m.visible = false
	m.fieldErrors = nil
	m.toast = ""
	onSuccess := m.OnSuccess
	m.mu.Unlock()

	m.logger.Debug("record saved", zap.Stringer("mode", mode))
	if onSuccess != nil {
		if err := onSuccess(ctx); err != nil {
			m.logger.Warn("refetch after save failed", zap.Error(err))
		}
	}
	return saved, nil
}

func (m *Modal[T]) check(form T) map[string]string {
	err := m.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return fields
}

// fail records a server or transport failure as a toast, plus per-field
// errors when the server sent them
func (m *Modal[T]) fail(msg string, err error) {
	m.logger.Warn(msg, zap.Error(err))

	toast := err.Error()
	var fields map[string]string
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			toast = apiErr.Message
		}
		if len(apiErr.Details) > 0 {
			fields = make(map[string]string, len(apiErr.Details))
			for _, d := range apiErr.Details {
				fields[d.Field] = d.Message
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.toast = toast
	m.fieldErrors = fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s long", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// Rows is an ordered list of child rows edited in memory and saved with
// their parent
type Rows[T any] struct {
	mu    sync.Mutex
	items []T
}

// Reset replaces every row
func (r *Rows[T]) Reset(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]T(nil), items...)
}

// Append adds a row at the end and returns its index
func (r *Rows[T]) Append(row T) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, row)
	return len(r.items) - 1
}

// Remove drops row i, keeping the order of the rest
func (r *Rows[T]) Remove(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.items) {
		return fmt.Errorf("row %d out of range [0,%d)", i, len(r.items))
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// Edit changes row i in place
func (r *Rows[T]) Edit(i int, fn func(row *T)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.items) {
		return fmt.Errorf("row %d out of range [0,%d)", i, len(r.items))
	}
	fn(&r.items[i])
	return nil
}

// Items returns a copy of the rows in order
func (r *Rows[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.items...)
}

// Len returns the number of rows
func (r *Rows[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Form rules of the simple resources
var (
	AreaRules = map[string]string{
		"AreaName": "required,max=50",
	}
	HotSearchRules = map[string]string{
		"Title":   "required,max=255",
		"Content": "required,max=255",
		"Status":  "oneof=0 1",
	}
	NoticeRules = map[string]string{
		"Title":  "required,max=36",
		"Status": "oneof=0 1",
		"IsTop":  "oneof=0 1",
	}
	IndexImgRules = map[string]string{
		"ImgURL": "required",
		"Status": "oneof=0 1",
		"Seq":    "gte=0",
	}
	BrandRules = map[string]string{
		"BrandName": "required,max=30",
		"Status":    "oneof=0 1",
	}
	CategoryRules = map[string]string{
		"CategoryName": "required,max=50",
		"Pic":          "required",
		"Status":       "oneof=0 1",
	}
	ProdTagRules = map[string]string{
		"Title":  "required,max=36",
		"Status": "oneof=0 1",
		"Style":  "oneof=0 1 2",
	}
	PickAddrRules = map[string]string{
		"AddrName":   "required,max=36",
		"Addr":       "required,max=1000",
		"Mobile":     "required,len=11,numeric",
		"ProvinceID": "required",
		"CityID":     "required",
		"AreaID":     "required",
	}
	TransportRules = map[string]string{
		"TransName":  "required,max=36",
		"ChargeType": "oneof=0 1",
	}
)

// NewAreaModal creates the area form
func NewAreaModal(api *API, logger *zap.Logger) *Modal[region.Area] {
	return NewModal[region.Area](api.Area, AreaRules, nil, logger)
}

// NewHotSearchModal creates the hot search form; new terms start enabled
func NewHotSearchModal(api *API, logger *zap.Logger) *Modal[marketing.HotSearch] {
	return NewModal[marketing.HotSearch](api.HotSearch, HotSearchRules, func() marketing.HotSearch {
		return marketing.HotSearch{Status: 1}
	}, logger)
}

// NewNoticeModal creates the notice form
func NewNoticeModal(api *API, logger *zap.Logger) *Modal[marketing.Notice] {
	return NewModal[marketing.Notice](api.Notice, NoticeRules, nil, logger)
}

// NewIndexImgModal creates the carousel image form
func NewIndexImgModal(api *API, logger *zap.Logger) *Modal[marketing.IndexImg] {
	return NewModal[marketing.IndexImg](api.IndexImg, IndexImgRules, func() marketing.IndexImg {
		return marketing.IndexImg{Status: 1}
	}, logger)
}

// NewBrandModal creates the brand form
func NewBrandModal(api *API, logger *zap.Logger) *Modal[catalog.Brand] {
	return NewModal[catalog.Brand](api.Brand, BrandRules, func() catalog.Brand {
		return catalog.Brand{Status: 1}
	}, logger)
}

// NewCategoryModal creates the category form
func NewCategoryModal(api *API, logger *zap.Logger) *Modal[catalog.Category] {
	return NewModal[catalog.Category](api.Category, CategoryRules, func() catalog.Category {
		return catalog.Category{Status: 1}
	}, logger)
}

// NewProdTagModal creates the product tag form
func NewProdTagModal(api *API, logger *zap.Logger) *Modal[catalog.ProdTag] {
	return NewModal[catalog.ProdTag](api.ProdTag, ProdTagRules, func() catalog.ProdTag {
		return catalog.ProdTag{Status: 1}
	}, logger)
}

// TransportModal edits a shipping template together with its fee rows and
// free-shipping conditions
type TransportModal struct {
	*Modal[delivery.Transport]
	Fees  *Rows[delivery.Transfee]
	Frees *Rows[delivery.TransfeeFree]
}

// NewTransportModal creates the shipping template form. A new template
// starts with one default fee row.
func NewTransportModal(api *API, logger *zap.Logger) *TransportModal {
	tm := &TransportModal{
		Fees:  &Rows[delivery.Transfee]{},
		Frees: &Rows[delivery.TransfeeFree]{},
	}
	tm.Modal = NewModal[delivery.Transport](api.Transport, TransportRules, func() delivery.Transport {
		return delivery.Transport{
			ChargeType: delivery.ChargeByPiece,
			Transfees:  []delivery.Transfee{delivery.NewTransfee()},
		}
	}, logger)
	tm.loaded = func(form delivery.Transport) {
		tm.Fees.Reset(form.Transfees)
		tm.Frees.Reset(form.TransfeeFrees)
	}
	tm.prepare = func(form *delivery.Transport) {
		form.Transfees = tm.Fees.Items()
		form.TransfeeFrees = tm.Frees.Items()
	}
	return tm
}
