package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electronics-store/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// memDB is an in-memory stand-in for the Postgres schema. Transactions are serialised
// and roll back by restoring a snapshot.
type memDB struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID     int
	categories map[int]models.Category
	products   map[int]models.Product
	cart       []models.CartItem
	orders     []models.Order
	users      map[int]models.User
	profiles   map[int]models.UserProfile

	failOrderCreate error
	failDeleteItems error
}

func newMemDB() *memDB {
	return &memDB{
		categories: map[int]models.Category{},
		products:   map[int]models.Product{},
		users:      map[int]models.User{},
		profiles:   map[int]models.UserProfile{},
	}
}

func (db *memDB) id() int {
	db.nextID++
	return db.nextID
}

func (db *memDB) addCategory(name string) models.Category {
	db.mu.Lock()
	defer db.mu.Unlock()
	cat := models.Category{ID: db.id(), Name: name}
	db.categories[cat.ID] = cat
	return cat
}

func (db *memDB) addProduct(categoryID int, name, price string, stock int) models.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := models.Product{
		ID:           db.id(),
		Name:         name,
		CategoryID:   categoryID,
		CategoryName: db.categories[categoryID].Name,
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		CreatedAt:    time.Now(),
	}
	db.products[p.ID] = p
	return p
}

func (db *memDB) setPrice(productID int, price string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := db.products[productID]
	p.Price = decimal.RequireFromString(price)
	db.products[productID] = p
}

func (db *memDB) orderCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.orders)
}

type memSnapshot struct {
	nextID     int
	categories map[int]models.Category
	products   map[int]models.Product
	cart       []models.CartItem
	orders     []models.Order
	users      map[int]models.User
	profiles   map[int]models.UserProfile
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	orders := make([]models.Order, len(db.orders))
	for i, o := range db.orders {
		o.Items = append([]models.OrderItem(nil), o.Items...)
		orders[i] = o
	}
	return memSnapshot{
		nextID:     db.nextID,
		categories: copyMap(db.categories),
		products:   copyMap(db.products),
		cart:       append([]models.CartItem(nil), db.cart...),
		orders:     orders,
		users:      copyMap(db.users),
		profiles:   copyMap(db.profiles),
	}
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextID = s.nextID
	db.categories = s.categories
	db.products = s.products
	db.cart = s.cart
	db.orders = s.orders
	db.users = s.users
	db.profiles = s.profiles
}

type memTx struct{ db *memDB }

type memTxKey struct{}

func (t memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	t.db.txMu.Lock()
	defer t.db.txMu.Unlock()

	snap := t.db.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}

type memCatalog struct{ db *memDB }

func (s memCatalog) GetAllCategories(_ context.Context) ([]models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Category, 0, len(s.db.categories))
	for _, c := range s.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s memCatalog) GetCategoryByID(_ context.Context, id int) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.categories[id]
	if !ok {
		return nil, models.NotFoundf("category %d", id)
	}
	return &c, nil
}

func (s memCatalog) CreateCategory(_ context.Context, cat *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	cat.ID = s.db.id()
	s.db.categories[cat.ID] = *cat
	return nil
}

func (s memCatalog) UpdateCategory(_ context.Context, cat *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.categories[cat.ID]; !ok {
		return models.NotFoundf("category %d", cat.ID)
	}
	s.db.categories[cat.ID] = *cat
	return nil
}

func (s memCatalog) sortedProducts(keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range s.db.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s memCatalog) GetFeaturedProducts(_ context.Context, limit int) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := s.sortedProducts(func(models.Product) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memCatalog) GetProductsByCategory(_ context.Context, categoryID int) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.sortedProducts(func(p models.Product) bool { return p.CategoryID == categoryID }), nil
}

func (s memCatalog) GetRelatedProducts(_ context.Context, categoryID, excludeID, limit int) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := s.sortedProducts(func(p models.Product) bool { return p.CategoryID == categoryID && p.ID != excludeID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memCatalog) GetProductByID(_ context.Context, id int) (*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.products[id]
	if !ok {
		return nil, models.NotFoundf("product %d", id)
	}
	return &p, nil
}

func (s memCatalog) SearchProducts(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	search := strings.ToLower(f.Search)
	return s.sortedProducts(func(p models.Product) bool {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			return false
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			return false
		}
		return true
	}), nil
}

func (s memCatalog) CreateProduct(_ context.Context, product *models.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	product.ID = s.db.id()
	s.db.products[product.ID] = *product
	return nil
}

func (s memCatalog) UpdateProduct(_ context.Context, product *models.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.products[product.ID]; !ok {
		return models.NotFoundf("product %d", product.ID)
	}
	s.db.products[product.ID] = *product
	return nil
}

type memCarts struct{ db *memDB }

func (s memCarts) AddOrIncrement(_ context.Context, userID, productID int) (*models.CartItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.cart {
		if s.db.cart[i].UserID == userID && s.db.cart[i].ProductID == productID {
			s.db.cart[i].Quantity++
			item := s.db.cart[i]
			return &item, nil
		}
	}
	item := models.CartItem{ID: s.db.id(), UserID: userID, ProductID: productID, Quantity: 1, CreatedAt: time.Now()}
	s.db.cart = append(s.db.cart, item)
	return &item, nil
}

func (s memCarts) withProduct(item models.CartItem) models.CartItem {
	p := s.db.products[item.ProductID]
	item.Product = &p
	return item
}

func (s memCarts) ListByUser(_ context.Context, userID int) ([]models.CartItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.CartItem{}
	for _, item := range s.db.cart {
		if item.UserID == userID {
			out = append(out, s.withProduct(item))
		}
	}
	return out, nil
}

func (s memCarts) ListByUserForUpdate(ctx context.Context, userID int) ([]models.CartItem, error) {
	return s.ListByUser(ctx, userID)
}

func (s memCarts) ListAll(_ context.Context, limit, offset int) ([]models.CartItem, int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.CartItem{}
	for i := offset; i < len(s.db.cart) && len(out) < limit; i++ {
		out = append(out, s.withProduct(s.db.cart[i]))
	}
	return out, len(s.db.cart), nil
}

func (s memCarts) indexOf(userID, itemID int) int {
	for i, item := range s.db.cart {
		if item.ID == itemID && item.UserID == userID {
			return i
		}
	}
	return -1
}

func (s memCarts) FindForUser(_ context.Context, userID, itemID int) (*models.CartItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := s.indexOf(userID, itemID)
	if i < 0 {
		return nil, models.NotFoundf("cart item %d", itemID)
	}
	item := s.withProduct(s.db.cart[i])
	return &item, nil
}

func (s memCarts) SetQuantity(_ context.Context, userID, itemID, quantity int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := s.indexOf(userID, itemID)
	if i < 0 {
		return models.NotFoundf("cart item %d", itemID)
	}
	s.db.cart[i].Quantity = quantity
	return nil
}

func (s memCarts) Delete(_ context.Context, userID, itemID int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := s.indexOf(userID, itemID)
	if i < 0 {
		return models.NotFoundf("cart item %d", itemID)
	}
	s.db.cart = append(s.db.cart[:i], s.db.cart[i+1:]...)
	return nil
}

func (s memCarts) DeleteItems(_ context.Context, userID int, itemIDs []int) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.failDeleteItems != nil {
		return 0, s.db.failDeleteItems
	}
	ids := map[int]bool{}
	for _, id := range itemIDs {
		ids[id] = true
	}
	kept := s.db.cart[:0:0]
	var removed int64
	for _, item := range s.db.cart {
		if item.UserID == userID && ids[item.ID] {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.db.cart = kept
	return removed, nil
}

type memOrders struct{ db *memDB }

func (s memOrders) Create(_ context.Context, order *models.Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	order.ID = s.db.id()
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = s.db.id()
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	s.db.orders = append(s.db.orders, stored)
	if s.db.failOrderCreate != nil {
		return s.db.failOrderCreate
	}
	return nil
}

func (s memOrders) find(keep func(models.Order) bool) (*models.Order, bool) {
	for _, o := range s.db.orders {
		if keep(o) {
			o.Items = append([]models.OrderItem(nil), o.Items...)
			return &o, true
		}
	}
	return nil, false
}

func (s memOrders) FindByID(_ context.Context, id int) (*models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if o, ok := s.find(func(o models.Order) bool { return o.ID == id }); ok {
		return o, nil
	}
	return nil, models.NotFoundf("order %d", id)
}

func (s memOrders) FindForUser(_ context.Context, userID, id int) (*models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if o, ok := s.find(func(o models.Order) bool { return o.ID == id && o.UserID == userID }); ok {
		return o, nil
	}
	return nil, models.NotFoundf("order %d", id)
}

func (s memOrders) ListByUser(_ context.Context, userID int) ([]models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Order{}
	for i := len(s.db.orders) - 1; i >= 0; i-- {
		if s.db.orders[i].UserID == userID {
			out = append(out, s.db.orders[i])
		}
	}
	return out, nil
}

func (s memOrders) ListAll(_ context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	matched := []models.Order{}
	for i := len(s.db.orders) - 1; i >= 0; i-- {
		if status == "" || s.db.orders[i].Status == status {
			matched = append(matched, s.db.orders[i])
		}
	}
	total := len(matched)
	if offset >= total {
		return []models.Order{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s memOrders) UpdateStatus(_ context.Context, id int, from, to models.OrderStatus) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.orders {
		if s.db.orders[i].ID == id {
			if s.db.orders[i].Status != from {
				return false, nil
			}
			s.db.orders[i].Status = to
			return true, nil
		}
	}
	return false, nil
}

type memUsers struct{ db *memDB }

func (s memUsers) Create(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == user.Username {
			return models.NewValidationError("users_username_key", "username already exists")
		}
	}
	user.ID = s.db.id()
	s.db.users[user.ID] = *user
	return nil
}

func (s memUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, models.NotFoundf("user %s", username)
}

func (s memUsers) FindByID(_ context.Context, id int) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, models.NotFoundf("user %d", id)
	}
	return &u, nil
}

func (s memUsers) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	return err == nil, nil
}

func (s memUsers) UpdateNames(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[user.ID]
	if !ok {
		return models.NotFoundf("user %d", user.ID)
	}
	u.FirstName, u.LastName, u.Email = user.FirstName, user.LastName, user.Email
	s.db.users[user.ID] = u
	return nil
}

func (s memUsers) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	profile.ID = s.db.id()
	s.db.profiles[profile.UserID] = *profile
	return nil
}

func (s memUsers) GetProfile(_ context.Context, userID int) (*models.UserProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.profiles[userID]
	if !ok {
		return nil, models.NotFoundf("profile of user %d", userID)
	}
	return &p, nil
}

func (s memUsers) UpdateProfile(_ context.Context, profile *models.UserProfile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.profiles[profile.UserID]; !ok {
		return models.NotFoundf("profile of user %d", profile.UserID)
	}
	s.db.profiles[profile.UserID] = *profile
	return nil
}

func (s memUsers) GetUserWithProfile(_ context.Context, userID int) (*models.UserWithProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[userID]
	if !ok {
		return nil, models.NotFoundf("user %d", userID)
	}
	p := s.db.profiles[userID]
	return &models.UserWithProfile{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		PhoneNumber:    p.PhoneNumber,
		Address:        p.Address,
		ProfilePicture: p.ProfilePicture,
	}, nil
}

type recordingObserver struct {
	mu     sync.Mutex
	orders []int
	err    error
}

func (o *recordingObserver) OrderPlaced(_ context.Context, _ models.Identity, order *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.orders = append(o.orders, order.ID)
	return o.err
}

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (r *memRevoker) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[tokenID] = ttl
	return nil
}

func (r *memRevoker) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type fixture struct {
	db       *memDB
	cart     *CartService
	orders   *OrderService
	admin    *OrderAdminService
	observer *recordingObserver
}

func newFixture() *fixture {
	db := newMemDB()
	logger := zap.NewNop()
	observer := &recordingObserver{}
	return &fixture{
		db:       db,
		cart:     NewCartService(memCarts{db}, memCatalog{db}, logger),
		orders:   NewOrderService(memTx{db}, memCarts{db}, memOrders{db}, logger, observer),
		admin:    NewOrderAdminService(memOrders{db}, logger),
		observer: observer,
	}
}

func codInput() models.PlaceOrderInput {
	return models.PlaceOrderInput{
		Shipping: models.ShippingInfo{
			FullName:    "Ali Raza",
			PhoneNumber: "03001234567",
			City:        "Lahore",
			Address:     "12 Mall Road",
		},
		Payment: models.PaymentDetails{Method: models.PaymentCashOnDelivery},
	}
}
