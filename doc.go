/*
Package nodl parses NoDL ("Node Description Language") documents.

A NoDL document is an XML file describing the communication interfaces
(topics, services, actions and parameters) a robotics process exposes:

	<interface version="1">
	  <node name="talker" executable="talker">
	    <topic name="chatter" type="std_msgs/msg/String" publisher="true">
	      <qos history="keep_last" depth="10"/>
	    </topic>
	  </node>
	</interface>

Parsing runs in stages. The byte stream is parsed as XML, the root is
validated against the interface envelope schema, the version attribute
selects a registered version parser, and that parser validates the
content against its own schema before converting each node element into
a types.Node.

ParseMultiple merges several documents into one node list, rejecting
documents that define the same executable twice. See the index
sub-package for locating documents in installed packages, and the
nodlerr sub-package for the error taxonomy.
*/
package nodl
