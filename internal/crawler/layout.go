package crawler

// Product page asset folders, created up front so every product tree has
// the same shape regardless of what the page actually links.
const (
	FolderDocumentations = "documentations"
	FolderImages         = "images"
	FolderBlockDiagrams  = "block_diagrams"
	FolderDesign         = "design_resources"
	FolderSoftware       = "software_tools"
	FolderMarkdowns      = "markdowns"
	FolderTrainings      = "trainings"
	FolderOther          = "other"
	FolderTables         = "tables"
)

// productFolders is the skeleton created for every product page.
var productFolders = []string{
	FolderDocumentations,
	FolderImages,
	FolderBlockDiagrams,
	FolderDesign,
	FolderSoftware,
	FolderMarkdowns,
	FolderTrainings,
	FolderOther,
}

// overviewFileName is the overview markdown artifact name.
const overviewFileName = "overview.md"

// diagramManifestName is the block diagram manifest name; the historical
// spelling is kept for artifact compatibility with existing consumers.
const diagramManifestName = "bloack_diagram_mappings.json"

// productsFileName is the product record table name.
const productsFileName = "products.json"
