package apistorev1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/docdb/service"
)

func BuildV1Store(v1 *box.R, s service.Servicer) *box.R {

	stores := v1.Resource("/stores").
		WithActions(
			box.Get(listStores),
			box.Post(createStore),
		)

	v1.Resource("/stores/{storeName}").
		WithActions(
			box.Get(getStore),
			box.ActionPost(appendDocuments).WithName("append"),
			box.ActionPost(reload),
			box.ActionPost(syncStore).WithName("sync"),
			box.ActionPost(dropStore),
		)

	return stores
}
