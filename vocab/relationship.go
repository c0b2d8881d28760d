package vocab

// RelationshipVocab is the name of the vocabulary labeling edges between
// related observable objects.
const RelationshipVocab = "ObjectRelationshipVocab-1.1"

// Well-known relationship terms.
const (
	RelContains        = "Contains"
	RelContainedWithin = "Contained_Within"
	RelCreated         = "Created"
	RelCreatedBy       = "Created_By"
	RelDeleted         = "Deleted"
	RelDeletedBy       = "Deleted_By"
	RelReadFrom        = "Read_From"
	RelWroteTo         = "Wrote_To"
	RelDownloaded      = "Downloaded"
	RelDownloadedBy    = "Downloaded_By"
	RelUploaded        = "Uploaded"
	RelUploadedBy      = "Uploaded_By"
	RelSent            = "Sent"
	RelSentBy          = "Sent_By"
	RelReceived        = "Received"
	RelReceivedBy      = "Received_By"
	RelResolvedTo      = "Resolved_To"
	RelRelatedTo       = "Related_To"
	RelDropped         = "Dropped"
	RelDroppedBy       = "Dropped_By"
	RelInstalled       = "Installed"
	RelInstalledBy     = "Installed_By"
	RelConnectedTo     = "Connected_To"
	RelConnectedFrom   = "Connected_From"
	RelParentOf        = "Parent_Of"
	RelChildOf         = "Child_Of"
	RelExtractedFrom   = "Extracted_From"
)

func init() {
	RegisterVocabulary(RelationshipVocab,
		RelContains, RelContainedWithin,
		RelCreated, RelCreatedBy,
		RelDeleted, RelDeletedBy,
		RelReadFrom, RelWroteTo,
		RelDownloaded, RelDownloadedBy,
		RelUploaded, RelUploadedBy,
		RelSent, RelSentBy,
		RelReceived, RelReceivedBy,
		RelResolvedTo, RelRelatedTo,
		RelDropped, RelDroppedBy,
		RelInstalled, RelInstalledBy,
		RelConnectedTo, RelConnectedFrom,
		RelParentOf, RelChildOf,
		RelExtractedFrom,
	)
}

// Relationship returns a String bound to the object relationship
// vocabulary. The term is not checked here; use Strict where only
// well-known terms are acceptable.
func Relationship(value string) String {
	return String{Value: value, Vocabulary: RelationshipVocab}
}
