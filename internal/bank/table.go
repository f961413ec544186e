// Package bank resolves French account identifiers to issuing banks
// using a static sort-code routing table.
package bank

// generalBanks maps sort-code prefixes to the main retail, online and
// regional banks. Hand-curated snapshot; not refreshed at runtime.
var generalBanks = map[string]string{
	// BNP Paribas
	"10907": "BNP Paribas",
	"30004": "BNP Paribas",
	"30001": "BNP Paribas",
	"10108": "BNP Paribas",

	// Société Générale
	"30003": "Société Générale",

	// La Banque Postale
	"20041": "La Banque Postale",

	// BRED Banque Populaire
	"30056": "BRED",

	// Crédit Mutuel
	"10278": "Crédit Mutuel",
	"10068": "Crédit Mutuel Anjou",
	"10096": "Crédit Mutuel Océan",
	"10138": "Crédit Mutuel Maine-Anjou",
	"10758": "Crédit Mutuel Nord Europe",
	"10518": "Crédit Mutuel Île-de-France",
	"10798": "Crédit Mutuel Dauphiné-Vivarais",
	"10838": "Crédit Mutuel Midi-Atlantique",
	"10548": "Crédit Mutuel Centre",
	"10878": "Crédit Mutuel Savoie-Mont Blanc",
	"10738": "Crédit Mutuel Loire-Atlantique Centre Ouest",
	"10207": "Crédit Mutuel",

	// CIC
	"10906": "CIC",
	"11027": "CIC Lyonnaise de Banque",
	"11516": "CIC Est",
	"11706": "CIC Sud Ouest",
	"30066": "CIC",

	// Banques Populaires
	"10107": "Banque Populaire",
	"13357": "Banque Populaire Auvergne Rhône Alpes",
	"11455": "Banque Populaire Bourgogne Franche-Comté",
	"12455": "Banque Populaire Grand Ouest",
	"13135": "Banque Populaire Méditerranée",
	"13825": "Banque Populaire Occitane",
	"14445": "Banque Populaire Rives de Paris",
	"14559": "Banque Populaire Val de France",
	"17068": "Banque Populaire Alsace Lorraine Champagne",
	"18415": "Banque Populaire",

	// Caisse d'Épargne
	"10695": "Caisse d'Épargne",
	"10778": "Caisse d'Épargne Île-de-France",
	"11315": "Caisse d'Épargne Loire-Centre",
	"12135": "Caisse d'Épargne Provence-Alpes-Corse",
	"12755": "Caisse d'Épargne Midi-Pyrénées",
	"13625": "Caisse d'Épargne Bretagne-Pays de Loire",
	"13715": "Caisse d'Épargne Côte d'Azur",
	"16515": "Caisse d'Épargne Grand Est Europe",
	"17906": "Caisse d'Épargne Rhône Alpes",

	// Online banks and neo-banks
	"16798": "ING Direct",
	"12548": "Boursorama",
	"13698": "Fortuneo",
	"15589": "Banque Palatine",
	"16958": "Revolut",
	"18206": "N26",
	"17515": "Qonto",
	"12968": "Nickel",

	// LCL
	"30002": "LCL - Le Crédit Lyonnais",
	"30005": "LCL",

	// Regional banks
	"30027": "Crédit Coopératif",
	"13506": "Crédit du Nord",
	"10479": "Banque Kolb",
	"10529": "Banque Nuger",
	"10589": "Banque Laydernier",
	"10609": "Banque Rhône-Alpes",
	"10868": "Banque Tarneaud",
	"18315": "Société Marseillaise de Crédit",
	"15135": "Banque Casino",

	// Foreign banks operating in France
	"30006": "HSBC France",
	"30007": "Barclays",
	"12739": "Crédit Foncier",
	"13134": "Banque Accord",
}

// creditAgricole maps sort-code prefixes to the Crédit Agricole regional
// network. Merged after generalBanks; six prefixes appear in both
// tables and this one deliberately wins on each.
var creditAgricole = map[string]string{
	"13906": "Crédit Agricole Centre-Est",
	"14706": "Crédit Agricole Atlantique Vendée",
	"18706": "Crédit Agricole Île-de-France",
	"16906": "Crédit Agricole Pyrénées Gascogne",
	"18206": "Crédit Agricole Nord-Est",
	"11706": "Crédit Agricole Charente Périgord",
	"10206": "Crédit Agricole Nord de France",
	"13306": "Crédit Agricole Aquitaine",
	"13606": "Crédit Agricole Centre Ouest",
	"14506": "Crédit Agricole Centre Loire",
	"16606": "Crédit Agricole Normandie-Seine",
	"17206": "Crédit Agricole Alsace Vosges",
	"17906": "Crédit Agricole Anjou Maine",
	"12406": "Crédit Agricole Charente-Maritime",
	"12906": "Crédit Agricole Finistère",
	"12206": "Crédit Agricole Morbihan",
	"14806": "Crédit Agricole Languedoc",
	"17106": "Crédit Agricole Loire Haute-Loire",
	"11206": "Crédit Agricole Brie Picardie",
	"13106": "Crédit Agricole Alpes Provence",
	"14406": "Crédit Agricole Ille-et-Vilaine",
	"16106": "Crédit Agricole Deux-Sèvres",
	"16706": "Crédit Agricole Sud Rhône Alpes",
	"17306": "Crédit Agricole Sud Méditerranée",
	"18106": "Crédit Agricole Touraine Poitou",
	"19106": "Crédit Agricole Centre France",
	"12506": "Crédit Agricole Loire Océan",
	"13206": "Crédit Agricole Midi-Pyrénées",
	"14206": "Crédit Agricole Normandie",
	"15206": "Crédit Agricole Savoie Mont Blanc",
	"16206": "Crédit Agricole Franche-Comté",
	"17606": "Crédit Agricole Lorraine",
	"18406": "Crédit Agricole Val de France",
	"19406": "Crédit Agricole Provence Côte d'Azur",
	"19906": "Crédit Agricole Côtes d'Armor",
	"16806": "Crédit Agricole Cantal Auvergne",
	"12006": "Crédit Agricole Corse",
	"11006": "Crédit Agricole Champagne-Bourgogne",
	"16006": "Crédit Agricole Morbihan",
	"17806": "Crédit Agricole Centre-Est",
	"13506": "Crédit Agricole Languedoc",
	"18306": "Crédit Agricole Normandie",
	"11306": "Crédit Agricole Alpes Provence",
	"30002": "Crédit Agricole",
	"11315": "Crédit Agricole",
	"13335": "Crédit Agricole",
}

// RoutingTable maps 5-character sort-code prefixes to bank display names.
// Immutable after construction.
type RoutingTable struct {
	banks map[string]string
}

// NewRoutingTable merges the curated tables. creditAgricole is merged
// last and overrides generalBanks on colliding prefixes.
func NewRoutingTable() *RoutingTable {
	merged := make(map[string]string, len(generalBanks)+len(creditAgricole))
	for code, name := range generalBanks {
		merged[code] = name
	}
	for code, name := range creditAgricole {
		merged[code] = name
	}
	return &RoutingTable{banks: merged}
}

// Name returns the display name for a sort-code prefix.
func (t *RoutingTable) Name(code string) (string, bool) {
	name, ok := t.banks[code]
	return name, ok
}

// Size returns the number of distinct prefixes in the merged table.
func (t *RoutingTable) Size() int {
	return len(t.banks)
}

// RegionalSize returns the number of Crédit Agricole regional entries.
func (t *RoutingTable) RegionalSize() int {
	return len(creditAgricole)
}
