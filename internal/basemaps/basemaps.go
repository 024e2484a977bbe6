// Package basemaps holds the fixed catalog of base map backgrounds and the
// suggested point categories. Map instances are placed copies of one of these.
package basemaps

// BaseMap is one entry of the fixed enumerated catalog
type BaseMap struct {
	Name string `json:"name"`
	Img  string `json:"img"`
}

// PointCategory is a suggested category with its default icon
type PointCategory struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Catalog lists every base map the app ships with
var Catalog = []BaseMap{
	{Name: "The Island", Img: "/assets/images/maps/TheIsland.png"},
	{Name: "The Center", Img: "/assets/images/maps/TheCenterMap.jpg"},
	{Name: "Scorched Earth", Img: "/assets/images/maps/ScorchedEarth.png"},
	{Name: "Astraeos", Img: "/assets/images/maps/Astraeos.png"},
	{Name: "Extinction", Img: "/assets/images/maps/Extinction.png"},
	{Name: "Aberration", Img: "/assets/images/maps/Aberration.png"},
	{Name: "Ragnarok", Img: "/assets/images/maps/Ragnarok.png"},
	{Name: "Valguero", Img: "/assets/images/maps/Valguero.png"},
	{Name: "LostColony", Img: "/assets/images/maps/LostColony.png"},
}

// Categories lists the suggested point categories
var Categories = []PointCategory{
	{Name: "Raid-Target", Icon: "colorize"},
	{Name: "Base-Spot", Icon: "colorize"},
	{Name: "Turrets", Icon: "warning"},
	{Name: "Resource", Icon: "target"},
	{Name: "Obelisk", Icon: "radio_button_checked"},
	{Name: "Transmitter", Icon: "cell_tower"},
	{Name: "Death-Marker", Icon: "skull"},
	{Name: "Tame", Icon: "pets"},
	{Name: "Artifact", Icon: "trophy"},
	{Name: "Navigation", Icon: "location_on"},
	{Name: "Waypoint", Icon: "home_pin"},
}

// Lookup returns the catalog entry for the given base map name
func Lookup(name string) (BaseMap, bool) {
	for _, bm := range Catalog {
		if bm.Name == name {
			return bm, true
		}
	}
	return BaseMap{}, false
}
