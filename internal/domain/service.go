package domain

// Service is an immutable catalog entry, defined at process start
type Service struct {
	ID       int64
	Name     string
	Price    int64 // LKR, integer units
	Duration int   // minutes
	Category string
	Image    string
}

// DefaultCatalog is the salon's service menu as shipped with the widget
var DefaultCatalog = []Service{
	{ID: 1, Name: "Signature Haircut", Price: 2500, Duration: 45, Category: "CUTTING", Image: "images/haircut.jpg"},
	{ID: 2, Name: "Beard Sculpting", Price: 1500, Duration: 30, Category: "SHAVING", Image: "images/beard.jpg"},
	{ID: 3, Name: "Luxury Therapy", Price: 3000, Duration: 40, Category: "MASSAGE", Image: "images/massage.jpg"},
	{ID: 4, Name: "Groom's Ritual", Price: 12000, Duration: 150, Category: "PACKAGE", Image: "images/package.jpg"},
}

// CatalogByID returns the catalog entry with the given id, or nil
func CatalogByID(catalog []Service, id int64) *Service {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
